package auth

import "errors"

// Outcome reasons reported for a failed authentication attempt.
const (
	ReasonOK                 = "ok"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonInvalidToken       = "invalid_token"
	ReasonExpiredToken       = "expired_token"
	ReasonUserNotFound       = "user_not_found"
	ReasonError              = "error"
)

// Reason maps an authentication error to its outcome reason.
func Reason(err error) string {
	switch {
	case err == nil:
		return ReasonOK
	case errors.Is(err, ErrInvalidCredentials):
		return ReasonInvalidCredentials
	case errors.Is(err, ErrExpiredToken):
		return ReasonExpiredToken
	case errors.Is(err, ErrInvalidToken):
		return ReasonInvalidToken
	case errors.Is(err, ErrUserNotFound):
		return ReasonUserNotFound
	default:
		return ReasonError
	}
}

// Decision is the terminal state of a protected request.
type Decision string

const (
	DecisionRejected   Decision = "rejected"
	DecisionAuthorized Decision = "authorized"
	DecisionForbidden  Decision = "forbidden"
)
