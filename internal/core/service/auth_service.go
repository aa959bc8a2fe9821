package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/todo-list/internal/api/metrics"
	"github.com/99minutos/todo-list/internal/core/domain"
	"github.com/99minutos/todo-list/internal/core/ports"
)

// AuthService implements registration and credential checks.
type AuthService struct {
	repo    ports.UserRepository
	cost    int
	metrics *metrics.Recorder
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, rec *metrics.Recorder, log zerolog.Logger) *AuthService {
	if rec == nil {
		rec = metrics.NewRecorder(nil)
	}
	return &AuthService{repo: repo, cost: bcrypt.DefaultCost, metrics: rec, log: log}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		}
		return nil, err
	}

	s.metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.metrics.LoginsTotal.WithLabelValues(metrics.LoginFailure).Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.metrics.LoginsTotal.WithLabelValues(metrics.LoginFailure).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	s.metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	return user, nil
}
