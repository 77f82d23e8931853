package auth

import "context"

// UserLookup is the read side the authentication strategies depend on.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	UserLookup
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	AddFavorite(ctx context.Context, userID, movieID string) error
	RemoveFavorite(ctx context.Context, userID, movieID string) error
}
