package service

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/crypto"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownProvider    = errors.New("unknown provider")
)

var jwtSecret = func() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-insecure-jwt-secret")
}()

// GetJWTSecret returns the JWT signing key.
func GetJWTSecret() []byte {
	return jwtSecret
}

// ProviderSettings is the user's AI provider configuration as shown in
// the settings screen. Keys themselves are never returned.
type ProviderSettings struct {
	PreferredProvider   string   `json:"preferredProvider"`
	ConfiguredProviders []string `json:"configuredProviders"`
}

type AuthService interface {
	Register(name, email, password string, apiKeys map[string]string, preferredProvider string) (*models.User, error)
	Login(email, password string) (string, time.Time, *models.User, error)
	CompleteOnboarding(userID string, profile *models.Profile, provider, apiKey string) error
	UpdateProviderSettings(userID, preferredProvider string, apiKeys map[string]string) error
	GetProviderSettings(userID string) (*ProviderSettings, error)
}

type authService struct {
	repo   repository.UserRepository
	cipher *crypto.Cipher
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, cipher *crypto.Cipher, logger *zap.Logger) AuthService {
	return &authService{repo: repo, cipher: cipher, logger: logger}
}

func (s *authService) Register(name, email, password string, apiKeys map[string]string, preferredProvider string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if preferredProvider == "" {
		preferredProvider = string(llm.ProviderOpenRouter)
	}
	if !llm.Provider(preferredProvider).Known() {
		return nil, ErrUnknownProvider
	}

	user := &models.User{
		ID:                uuid.New().String(),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		PreferredProvider: preferredProvider,
		Onboarded:         false,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.repo.CreateUser(user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.storeAPIKeys(user.ID, apiKeys); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *authService) Login(email, password string) (string, time.Time, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, nil, ErrUserNotFound
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", time.Time{}, nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return tokenString, expirationTime, user, nil
}

func (s *authService) CompleteOnboarding(userID string, profile *models.Profile, provider, apiKey string) error {
	if provider != "" {
		if !llm.Provider(provider).Known() {
			return ErrUnknownProvider
		}
		if err := s.repo.SetPreferredProvider(userID, provider); err != nil {
			return fmt.Errorf("failed to set preferred provider: %w", err)
		}
		if apiKey != "" {
			if err := s.storeAPIKeys(userID, map[string]string{provider: apiKey}); err != nil {
				return err
			}
		}
	}

	if profile != nil {
		if err := s.repo.SaveProfile(userID, profile); err != nil {
			s.logger.Error("Failed to save onboarding profile", zap.Error(err))
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}

	if err := s.repo.MarkOnboarded(userID); err != nil {
		return fmt.Errorf("failed to mark user onboarded: %w", err)
	}

	s.logger.Info("Onboarding completed", zap.String("user_id", userID))
	return nil
}

func (s *authService) UpdateProviderSettings(userID, preferredProvider string, apiKeys map[string]string) error {
	if preferredProvider != "" {
		if !llm.Provider(preferredProvider).Known() {
			return ErrUnknownProvider
		}
		if err := s.repo.SetPreferredProvider(userID, preferredProvider); err != nil {
			return fmt.Errorf("failed to set preferred provider: %w", err)
		}
	}
	return s.storeAPIKeys(userID, apiKeys)
}

func (s *authService) GetProviderSettings(userID string) (*ProviderSettings, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	providers, err := s.repo.ListAPIKeyProviders(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	return &ProviderSettings{
		PreferredProvider:   user.PreferredProvider,
		ConfiguredProviders: providers,
	}, nil
}

func (s *authService) storeAPIKeys(userID string, apiKeys map[string]string) error {
	for provider, key := range apiKeys {
		if key == "" {
			continue
		}
		if !llm.Provider(provider).Known() {
			return ErrUnknownProvider
		}
		encrypted, err := s.cipher.Encrypt(key)
		if err != nil {
			s.logger.Error("Failed to encrypt api key", zap.Error(err))
			return fmt.Errorf("failed to encrypt api key: %w", err)
		}
		if err := s.repo.SaveAPIKey(userID, provider, encrypted); err != nil {
			return fmt.Errorf("failed to save api key: %w", err)
		}
	}
	return nil
}

// hashPassword uses Argon2id to hash the password.
func (s *authService) hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s", argon2.Version, 64*1024, 1, 4, encodedSalt, encodedHash), nil
}

func (s *authService) verifyPassword(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, uint32(len(expected)))
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
