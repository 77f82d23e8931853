package auth

import domain "cinemacenter/backend/internal/domain/auth"

// Authorize permits an operation on a user resource only when the caller owns it.
// User resources are addressed by username; the comparison is exact.
func Authorize(identity *domain.User, targetUsername string) error {
	if identity == nil || identity.Username == "" || targetUsername == "" {
		return domain.ErrPermissionDenied
	}
	if identity.Username != targetUsername {
		return domain.ErrPermissionDenied
	}
	return nil
}
