package security

import "strings"

// UserMessage maps a backend auth failure to one of a small fixed set of
// user-facing strings by substring match. Anything unmatched falls back to a
// generic message so raw backend errors never reach the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "already registered"),
		strings.Contains(msg, "email_exists"),
		strings.Contains(msg, "already exists"):
		return "This email is already registered"
	case strings.Contains(msg, "invalid_password"),
		strings.Contains(msg, "invalid login credentials"),
		strings.Contains(msg, "invalid_login_credentials"),
		strings.Contains(msg, "email_not_found"):
		return "Invalid email or password"
	case strings.Contains(msg, "too_many_attempts"),
		strings.Contains(msg, "too many attempts"),
		strings.Contains(msg, "rate limit"):
		return "Too many attempts. Please try again later"
	case strings.Contains(msg, "user_disabled"):
		return "This account has been disabled"
	default:
		return "Something went wrong. Please try again"
	}
}
