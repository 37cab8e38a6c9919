package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gymdash/internal/backend"
	"gymdash/internal/config"
	"gymdash/internal/flagx"
	"gymdash/internal/logging"
)

type App struct {
	client *backend.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	return &App{
		client: backend.New(cfg.BackendBaseURL, "", cfg.RequestTimeout, logger),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run prompts for credentials, logs in against the backend, and stores the
// issued token in the config file named by -c/-config. Without a config file
// the token is printed so it can be exported instead.
func (a *App) Run(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return fmt.Errorf("reading email: %w", err)
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	configFile := flagx.JsonConfigFlags()
	if configFile == "" {
		fmt.Fprintf(a.out, "Login ok. Export GYMDASH_BACKEND_TOKEN=%s\n", token)
		return nil
	}

	if err := storeToken(configFile, token); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login ok. Token stored in %s\n", configFile)
	return nil
}

// storeToken updates backend_token in the JSON config file, preserving the
// other settings in it.
func storeToken(path, token string) error {
	settings := map[string]any{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("config file %s is not valid JSON: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	settings["backend_token"] = token

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
