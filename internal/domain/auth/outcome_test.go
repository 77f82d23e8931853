package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReason(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ReasonOK},
		{ErrInvalidCredentials, ReasonInvalidCredentials},
		{ErrInvalidToken, ReasonInvalidToken},
		{fmt.Errorf("%w: signature is invalid", ErrInvalidToken), ReasonInvalidToken},
		{ErrExpiredToken, ReasonExpiredToken},
		{ErrUserNotFound, ReasonUserNotFound},
		{errors.New("db down"), ReasonError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Reason(tc.err), "err %v", tc.err)
	}
}

func TestUser_HasFavorite(t *testing.T) {
	u := &User{FavoriteMovies: []string{"a", "b"}}
	assert.True(t, u.HasFavorite("b"))
	assert.False(t, u.HasFavorite("c"))
}
