package auth_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	account_repository "blogboard/internal/repository/account"
	profile_repository "blogboard/internal/repository/profile"
)

type AuthService struct {
	accountRepo account_repository.Repository
	profileRepo profile_repository.Repository
	sessions    SessionStore
	sessionTTL  time.Duration
	log         *logger.Logger
}

func NewAuthService(
	accountRepo account_repository.Repository,
	profileRepo profile_repository.Repository,
	sessions SessionStore,
	sessionTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		log:         log,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req *model.SignUpDTO) (*model.Identity, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", custom_errors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, "", custom_errors.ErrExternalServiceError
	}

	account, err := s.accountRepo.Create(ctx, &model.Account{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrEmailAlreadyUsed) {
			s.log.Debug("Sign-up with existing email", slog.String("email", email))
			return nil, "", custom_errors.ErrEmailAlreadyUsed
		}
		s.log.Error("Failed to create account", slog.String("error", err.Error()))
		return nil, "", custom_errors.ErrDatabaseQuery
	}

	if req.FirstName != "" || req.LastName != "" {
		err = s.profileRepo.Upsert(ctx, &model.Profile{
			UserID:    account.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			s.log.Error("Failed to store profile for new account",
				slog.Int64("user_id", account.ID),
				slog.String("error", err.Error()))
			return nil, "", custom_errors.ErrDatabaseQuery
		}
	}

	identity := &model.Identity{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		LoggedIn:  true,
	}

	token, err := s.openSession(ctx, identity)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("Account created", slog.Int64("user_id", account.ID))
	return identity, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Sign-in for unknown email", slog.String("email", email))
			return nil, "", custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to get account by email", slog.String("error", err.Error()))
		return nil, "", custom_errors.ErrDatabaseQuery
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("Sign-in with wrong password", slog.Int64("user_id", account.ID))
		return nil, "", custom_errors.ErrInvalidCredentials
	}

	identity := &model.Identity{
		ID:       account.ID,
		Email:    account.Email,
		LoggedIn: true,
	}
	if profile, err := s.profileRepo.GetByUserID(ctx, account.ID); err == nil {
		identity.FirstName = profile.FirstName
		identity.LastName = profile.LastName
	}

	token, err := s.openSession(ctx, identity)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("User signed in", slog.Int64("user_id", account.ID))
	return identity, token, nil
}

func (s *AuthService) GetSession(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, custom_errors.ErrSessionNotFound
	}
	identity, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, custom_errors.ErrSessionNotFound) || errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrSessionNotFound
		}
		s.log.Error("Failed to read session", slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}
	return identity, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.Error("Failed to delete session", slog.String("error", err.Error()))
		return custom_errors.ErrExternalServiceError
	}
	s.log.Debug("Session closed")
	return nil
}

func (s *AuthService) openSession(ctx context.Context, identity *model.Identity) (string, error) {
	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, identity, s.sessionTTL); err != nil {
		s.log.Error("Failed to store session", slog.String("error", err.Error()))
		return "", custom_errors.ErrExternalServiceError
	}
	return token, nil
}
