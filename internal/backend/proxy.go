package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// The dashboard tabs for gym details, attendance and membership are thin
// proxies: the backend owns the schema, so payloads pass through untouched.

func (c *Client) GymProfile(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/gym", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateGymProfile(ctx context.Context, profile json.RawMessage) error {
	return c.do(ctx, http.MethodPut, "/api/gym", profile, nil)
}

func (c *Client) Attendance(ctx context.Context, userID string) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/api/users/%s/attendance", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MembershipStatus(ctx context.Context, userID string) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/api/users/%s/membership", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
