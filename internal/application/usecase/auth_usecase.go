package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"straightenup/internal/application/security"
	profiledom "straightenup/internal/domain/profile"
)

var (
	ErrAuthRateLimited = errors.New("auth_usecase: too many attempts")
)

// ValidationError wraps pre-flight validation failures so handlers can keep
// them apart from backend rejections (they never reached the network).
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 0 {
		return "auth_usecase: validation failed"
	}
	return fmt.Sprintf("auth_usecase: validation failed: %v", e.Errs[0])
}

// Session is the authenticated result handed back to the client.
type Session struct {
	UID          string             `json:"uid"`
	IDToken      string             `json:"idToken"`
	RefreshToken string             `json:"refreshToken"`
	Profile      profiledom.Profile `json:"profile"`
}

// UserCreator is the outbound port for account creation (Firebase Admin).
type UserCreator interface {
	CreateUser(ctx context.Context, email, password string) (uid string, err error)
}

// PasswordSignIn is the outbound port for email/password sign-in
// (identitytoolkit REST; the Admin SDK has no password verification).
type PasswordSignIn interface {
	SignIn(ctx context.Context, email, password string) (uid, idToken, refreshToken string, err error)
}

// AuthUsecase is the auth gate: validation runs before any network call,
// attempts are throttled per normalized email, and backend failures are
// left raw here (handlers map them to user-facing strings).
type AuthUsecase struct {
	creator  UserCreator
	signIn   PasswordSignIn
	profiles *ProfileUsecase
	limiter  *security.RateLimiter
}

func NewAuthUsecase(creator UserCreator, signIn PasswordSignIn, profiles *ProfileUsecase) *AuthUsecase {
	return &AuthUsecase{
		creator:  creator,
		signIn:   signIn,
		profiles: profiles,
		limiter:  security.NewRateLimiter(),
	}
}

// SignUp validates, creates the Firebase user and its profile doc, then
// signs the fresh account in so the client gets a session immediately.
func (uc *AuthUsecase) SignUp(ctx context.Context, email, password, confirm string) (Session, error) {
	mail := security.NormalizeEmail(email)

	if errs := security.ValidateSignUp(mail, password, confirm); len(errs) > 0 {
		return Session{}, &ValidationError{Errs: errs}
	}
	if !uc.limiter.Allow(mail) {
		return Session{}, ErrAuthRateLimited
	}

	uid, err := uc.creator.CreateUser(ctx, mail, password)
	if err != nil {
		return Session{}, err
	}

	p, err := uc.profiles.GetOrCreate(ctx, uid, mail)
	if err != nil {
		// account exists but the profile write failed; sign-in will retry it
		log.Printf("[auth_usecase] profile create failed uid=%s err=%v", uid, err)
		return Session{}, err
	}

	_, idToken, refreshToken, err := uc.signIn.SignIn(ctx, mail, password)
	if err != nil {
		return Session{}, err
	}

	uc.limiter.Reset(mail)
	return Session{UID: uid, IDToken: idToken, RefreshToken: refreshToken, Profile: *p}, nil
}

// SignIn validates with the lenient rule and authenticates.
func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (Session, error) {
	mail := security.NormalizeEmail(email)

	if err := security.ValidateEmail(mail); err != nil {
		return Session{}, &ValidationError{Errs: []error{err}}
	}
	if err := security.ValidateSignInPassword(password); err != nil {
		return Session{}, &ValidationError{Errs: []error{err}}
	}
	if !uc.limiter.Allow(mail) {
		return Session{}, ErrAuthRateLimited
	}

	uid, idToken, refreshToken, err := uc.signIn.SignIn(ctx, mail, password)
	if err != nil {
		return Session{}, err
	}

	p, err := uc.profiles.GetOrCreate(ctx, uid, mail)
	if err != nil {
		return Session{}, err
	}

	uc.limiter.Reset(mail)
	return Session{UID: uid, IDToken: idToken, RefreshToken: refreshToken, Profile: *p}, nil
}
