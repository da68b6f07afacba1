package httpout

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseUserCreator implements usecase.UserCreator on the Firebase Admin
// SDK. Creation is privileged, so unlike sign-in it does not go through the
// identitytoolkit REST API.
type FirebaseUserCreator struct {
	Auth *fbauth.Client
}

func NewFirebaseUserCreator(auth *fbauth.Client) *FirebaseUserCreator {
	return &FirebaseUserCreator{Auth: auth}
}

func (c *FirebaseUserCreator) CreateUser(ctx context.Context, email, password string) (string, error) {
	if c == nil || c.Auth == nil {
		return "", errors.New("firebase user creator auth client is nil")
	}

	params := (&fbauth.UserToCreate{}).
		Email(strings.TrimSpace(email)).
		Password(password)

	u, err := c.Auth.CreateUser(ctx, params)
	if err != nil {
		// The Admin SDK error text contains "already exists" for duplicate
		// emails; security.UserMessage matches on it.
		return "", err
	}
	return u.UID, nil
}
