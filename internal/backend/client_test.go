package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymdash/internal/common"
	"gymdash/internal/history"
	"gymdash/internal/logging"

	"github.com/stretchr/testify/require"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", 2*time.Second, discardLogger())
}

func TestListItems_NormalizesRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/users/u1/diet-plans", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"success": true,
			"items": [
				{"id": 42, "name": "Cut phase", "createdAt": "2024-03-01T00:00:00Z", "updatedAt": "2024-03-02T00:00:00Z", "meals": ["oats"]},
				{"id": 43, "title": "Bulk phase"}
			]
		}`)
	})
	client.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	src := NewPlanSource(client, history.KindDiet)
	items, err := src.ListItems(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "backend-42", items[0].ID)
	require.Equal(t, "42", items[0].PlanID)
	require.Equal(t, "Cut phase", items[0].OwnerLabel)
	require.Equal(t, "u1", items[0].UserID)
	require.Equal(t, "2024-03-01T00:00:00Z", items[0].CreatedAt)

	// The full record rides along as the opaque plan payload.
	var payload map[string]any
	require.NoError(t, json.Unmarshal(items[0].Plan, &payload))
	require.Equal(t, []any{"oats"}, payload["meals"])

	// "title" is accepted as a fallback for "name"; missing timestamps
	// default to now.
	require.Equal(t, "Bulk phase", items[1].OwnerLabel)
	require.Equal(t, "2024-06-01T00:00:00Z", items[1].CreatedAt)
	require.Equal(t, "2024-06-01T00:00:00Z", items[1].UpdatedAt)
}

func TestListItems_EnvelopeFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": false, "error": "user not found"}`)
	})

	src := NewPlanSource(client, history.KindWorkout)
	_, err := src.ListItems(context.Background(), "ghost")
	require.Error(t, err)
	require.Contains(t, err.Error(), "user not found")
}

func TestListItems_HTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"error": "upstream down"}`)
	})

	src := NewPlanSource(client, history.KindDiet)
	_, err := src.ListItems(context.Background(), "u1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "upstream down")
}

func TestListItems_SkipsUnreadableRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": true, "items": [{"id": 1}, "not an object"]}`)
	})

	src := NewPlanSource(client, history.KindDiet)
	items, err := src.ListItems(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "backend-1", items[0].ID)
}

func TestSavePlan_ReturnsNamespacedID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/u1/workout-plans", r.URL.Path)

		var body struct {
			Name string          `json:"name"`
			Plan json.RawMessage `json:"plan"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Leg day", body.Name)

		io.WriteString(w, `{"success": true, "id": 77}`)
	})

	id, err := client.SavePlan(context.Background(), history.KindWorkout, "u1", "Leg day", json.RawMessage(`{"sets": 5}`))
	require.NoError(t, err)
	require.Equal(t, "backend-77", id)
}

func TestDo_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"success": true, "items": []}`)
	}))
	defer srv.Close()

	client := New(srv.URL, "opaque-token", 2*time.Second, discardLogger())
	_, err := NewPlanSource(client, history.KindDiet).ListItems(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Bearer opaque-token", gotAuth)
}

func TestDo_ExpiredTokenFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, expiredToken(t), 2*time.Second, discardLogger())
	_, err := NewPlanSource(client, history.KindDiet).ListItems(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrTokenExpired)
	require.False(t, called)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] == "secret" {
			io.WriteString(w, `{"success": true, "token": "tok-123"}`)
			return
		}
		io.WriteString(w, `{"success": false, "error": "bad credentials"}`)
	})

	token, err := client.Login(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	_, err = client.Login(context.Background(), "anna@example.com", "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad credentials")
}

func TestGymProxies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/gym":
			if r.Method == http.MethodPut {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			io.WriteString(w, `{"name": "Iron Temple", "amenities": ["sauna"]}`)
		case "/api/users/u1/attendance":
			io.WriteString(w, `{"visits": 12}`)
		case "/api/users/u1/membership":
			io.WriteString(w, `{"status": "active"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	profile, err := client.GymProfile(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"name": "Iron Temple", "amenities": ["sauna"]}`, string(profile))

	require.NoError(t, client.UpdateGymProfile(ctx, json.RawMessage(`{"name": "Iron Temple 2"}`)))

	attendance, err := client.Attendance(ctx, "u1")
	require.NoError(t, err)
	require.JSONEq(t, `{"visits": 12}`, string(attendance))

	membership, err := client.MembershipStatus(ctx, "u1")
	require.NoError(t, err)
	require.JSONEq(t, `{"status": "active"}`, string(membership))
}
