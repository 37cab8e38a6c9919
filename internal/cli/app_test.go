package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("anna@example.com\n"))

	got, err := GetSimpleText(reader, "Enter email", &out)
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", got)
	require.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Enter email", &out)
	require.NoError(t, err)
	require.Equal(t, "partial", got)
}

func TestGetPassword_UsesStub(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), pw)
	require.Contains(t, out.String(), "Enter password")
}

func TestStoreToken_PreservesOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"listen_addr": ":9091"}`), 0o600))

	require.NoError(t, storeToken(path, "tok-123"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(data, &settings))
	require.Equal(t, "tok-123", settings["backend_token"])
	require.Equal(t, ":9091", settings["listen_addr"])
}

func TestStoreToken_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")

	require.NoError(t, storeToken(path, "tok-123"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "tok-123")
}
