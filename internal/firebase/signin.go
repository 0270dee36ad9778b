package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"textkeeper/internal/domain/user"
	textkeeper_errors "textkeeper/pkg/errors"
)

const (
	signInPath        = "/v1/accounts:signInWithPassword"
	defaultSignInBase = "https://identitytoolkit.googleapis.com"
)

// Identity Toolkit error messages that mean the credentials were rejected.
var rejectedCredentials = []string{
	"EMAIL_NOT_FOUND",
	"INVALID_PASSWORD",
	"INVALID_LOGIN_CREDENTIALS",
	"INVALID_EMAIL",
	"USER_DISABLED",
}

// SignInClient verifies passwords with the Identity Toolkit REST API.
type SignInClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewSignInClient builds a client for the given web API key. When
// emulatorHost is set, requests go to the Auth emulator instead.
func NewSignInClient(apiKey, emulatorHost string, httpClient *http.Client) *SignInClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := defaultSignInBase
	if emulatorHost != "" {
		baseURL = "http://" + emulatorHost + "/identitytoolkit.googleapis.com"
	}
	return &SignInClient{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// WithBaseURL points the client at another Identity Toolkit root.
func (c *SignInClient) WithBaseURL(baseURL string) *SignInClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type signInError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *SignInClient) VerifyPassword(ctx context.Context, email, password string) (user.Identity, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return user.Identity{}, err
	}

	endpoint := c.baseURL + signInPath + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return user.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Identity{}, fmt.Errorf("identity toolkit sign-in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr signInError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return user.Identity{}, fmt.Errorf("identity toolkit sign-in: status %d", resp.StatusCode)
		}
		if isRejectedCredentials(apiErr.Error.Message) {
			return user.Identity{}, textkeeper_errors.ErrUnauthorized
		}
		return user.Identity{}, fmt.Errorf("identity toolkit sign-in: status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return user.Identity{}, fmt.Errorf("decode sign-in response: %w", err)
	}
	if out.LocalID == "" {
		return user.Identity{}, fmt.Errorf("identity toolkit sign-in: empty localId")
	}
	return user.Identity{UID: out.LocalID, Email: out.Email}, nil
}

// Messages may carry a suffix, e.g. "INVALID_PASSWORD : details".
func isRejectedCredentials(message string) bool {
	code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
	for _, rejected := range rejectedCredentials {
		if code == rejected {
			return true
		}
	}
	return false
}
