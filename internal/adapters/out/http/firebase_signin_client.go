package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const identityToolkitEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseSignInClient implements usecase.PasswordSignIn on the
// identitytoolkit REST API. The Admin SDK cannot verify passwords, so
// sign-in goes through the same endpoint the web SDK uses.
type FirebaseSignInClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewFirebaseSignInClient(webAPIKey string) *FirebaseSignInClient {
	return &FirebaseSignInClient{
		apiKey:   strings.TrimSpace(webAPIKey),
		endpoint: identityToolkitEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type signInErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *FirebaseSignInClient) SignIn(ctx context.Context, email, password string) (uid, idToken, refreshToken string, err error) {
	if c == nil || c.apiKey == "" {
		return "", "", "", errors.New("firebase sign-in client api key is empty")
	}

	url := c.endpoint + "?key=" + c.apiKey

	b, _ := json.Marshal(signInRequest{
		Email:             strings.TrimSpace(email),
		Password:          password,
		ReturnSecureToken: true,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", "", "", err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))

	if res.StatusCode != http.StatusOK {
		// Surface the identitytoolkit error code ("INVALID_LOGIN_CREDENTIALS",
		// "USER_DISABLED", ...) so security.UserMessage can match on it.
		var parsed signInErrorResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
			return "", "", "", errors.New(parsed.Error.Message)
		}
		return "", "", "", fmt.Errorf("sign-in failed status=%d", res.StatusCode)
	}

	var ok signInResponse
	if err := json.Unmarshal(body, &ok); err != nil {
		return "", "", "", fmt.Errorf("sign-in response decode failed: %w", err)
	}
	if ok.LocalID == "" || ok.IDToken == "" {
		return "", "", "", errors.New("sign-in response is missing localId or idToken")
	}
	return ok.LocalID, ok.IDToken, ok.RefreshToken, nil
}
