package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "cinemacenter/backend/internal/domain/auth"
	"cinemacenter/backend/internal/logging"
	"cinemacenter/backend/internal/metrics"

	"github.com/google/uuid"
)

// Service coordinates authentication workflows between domain and infrastructure.
type Service struct {
	users   domain.UserRepository
	tokens  TokenManager
	hasher  PasswordHasher
	nowFunc func() time.Time

	decoyOnce sync.Once
	decoyHash string
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenManager, hasher PasswordHasher) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		nowFunc: time.Now,
	}
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Birthday  *time.Time
}

// Register creates a new user and returns the persisted entity without a password hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		PasswordHash:   hashed,
		Email:          email,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Birthday:       input.Birthday,
		FavoriteMovies: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return sanitizeUser(user), nil
}

// Authenticate is the local strategy: it checks a username and password pair.
// Every rejection is reported as domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.authenticate(ctx, username, password)
	metrics.AuthOutcomes.WithLabelValues(metrics.StrategyLocal, domain.Reason(err)).Inc()
	return user, err
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logging.Ctx(ctx)
	if username == "" || password == "" {
		log.Warn().Msg("login rejected: missing username or password")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Spend the same bcrypt work as a real comparison.
			s.hasher.Verify(password, s.decoy())
			log.Warn().Str("username", username).Msg("login rejected: unknown username")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Warn().Str("username", username).Msg("login rejected: incorrect password")
		return nil, domain.ErrInvalidCredentials
	}

	log.Info().Str("user_id", user.ID).Msg("login successful")
	return sanitizeUser(user), nil
}

// Login validates credentials and returns a token plus user.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// VerifyToken is the bearer strategy: it validates a token and resolves the user it names.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.verifyToken(ctx, token)
	metrics.AuthOutcomes.WithLabelValues(metrics.StrategyBearer, domain.Reason(err)).Inc()
	return user, err
}

func (s *Service) verifyToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	identity, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user %q: %w", identity.UserID, err)
	}

	return sanitizeUser(user), nil
}

func (s *Service) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.decoyHash = hash
		}
	})
	return s.decoyHash
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	copy.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return &copy
}
