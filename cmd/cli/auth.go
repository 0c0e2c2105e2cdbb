package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Log in to a moviehub API server"}

	var email, password, username string

	login := &cobra.Command{
		Use:  "login",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}
			var resp authResponse
			payload := map[string]string{"email": email, "password": password}
			if err := a.post(cmd, "/auth/login", "", payload, &resp); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := saveToken(a.tokenPath, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(a.out, "logged in")
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "email address")
	login.Flags().StringVar(&password, "password", "", "password")

	register := &cobra.Command{
		Use:  "register",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || email == "" || password == "" {
				return errors.New("username, email, and password are required")
			}
			var resp authResponse
			payload := map[string]string{"username": username, "email": email, "password": password}
			if err := a.post(cmd, "/auth/register", "", payload, &resp); err != nil {
				return fmt.Errorf("register failed: %w", err)
			}
			if err := saveToken(a.tokenPath, resp.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(a.out, "registered and logged in")
			return nil
		},
	}
	register.Flags().StringVar(&username, "username", "", "username")
	register.Flags().StringVar(&email, "email", "", "email address")
	register.Flags().StringVar(&password, "password", "", "password")

	logout := &cobra.Command{
		Use:  "logout",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// revoke server-side when we can; the local token goes regardless
			if token, err := readToken(a.tokenPath); err == nil && token != "" {
				if err := a.post(cmd, "/auth/logout", token, nil, nil); err != nil {
					a.log.Warn().Err(err).Msg("server logout")
				}
			}
			if err := clearToken(a.tokenPath); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(a.out, "logged out")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:  "whoami",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := readToken(a.tokenPath)
			if err != nil || token == "" {
				return errors.New("token not found, please login")
			}
			var me map[string]any
			resp, err := a.http().R().
				SetContext(cmd.Context()).
				SetAuthToken(token).
				Get("/users/me")
			if err != nil {
				return err
			}
			if resp.IsError() {
				return fmt.Errorf("GET /users/me failed: %s", strings.TrimSpace(resp.String()))
			}
			if err := json.Unmarshal(resp.Body(), &me); err != nil {
				return err
			}
			return printJSON(a.out, me)
		},
	}

	cmd.AddCommand(login, register, logout, whoami)
	return cmd
}

func (a *app) http() *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(a.apiURL, "/")).
		SetTimeout(15 * time.Second)
}

func (a *app) post(cmd *cobra.Command, path, token string, payload, out any) error {
	req := a.http().R().SetContext(cmd.Context())
	if payload != nil {
		req.SetBody(payload)
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	resp, err := req.Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("POST %s failed: %s", path, strings.TrimSpace(resp.String()))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.moviehub-token.json"
	}
	return filepath.Join(home, ".moviehub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
