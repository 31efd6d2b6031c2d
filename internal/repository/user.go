package repository

import (
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	SetPreferredProvider(userID, provider string) error
	MarkOnboarded(userID string) error
	SaveProfile(userID string, profile *models.Profile) error
	GetProfile(userID string) (*models.Profile, error)
	SaveAPIKey(userID, provider, encryptedKey string) error
	GetAPIKey(userID, provider string) (string, error)
	ListAPIKeyProviders(userID string) ([]string, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewUserRepository(db *sqlx.DB, log *logrus.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, preferred_provider, onboarded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, user.ID, user.Name, user.Email, user.PasswordHash,
		user.PreferredProvider, user.Onboarded, user.CreatedAt)
	return err
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password_hash, preferred_provider, onboarded, created_at
		FROM users WHERE email = $1`
	if err := r.db.Get(&user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password_hash, preferred_provider, onboarded, created_at
		FROM users WHERE id = $1`
	if err := r.db.Get(&user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetPreferredProvider(userID, provider string) error {
	_, err := r.db.Exec(`UPDATE users SET preferred_provider = $1 WHERE id = $2`, provider, userID)
	return err
}

func (r *userRepository) MarkOnboarded(userID string) error {
	_, err := r.db.Exec(`UPDATE users SET onboarded = $1 WHERE id = $2`, true, userID)
	return err
}

func (r *userRepository) SaveProfile(userID string, profile *models.Profile) error {
	_, err := r.db.Exec(`UPDATE users SET profile = $1 WHERE id = $2`, profile, userID)
	return err
}

func (r *userRepository) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	var raw []byte
	if err := r.db.Get(&raw, `SELECT profile FROM users WHERE id = $1`, userID); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if err := profile.Scan(raw); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) SaveAPIKey(userID, provider, encryptedKey string) error {
	query := `INSERT INTO api_keys (user_id, provider, encrypted_key) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, provider) DO UPDATE SET encrypted_key = excluded.encrypted_key`
	_, err := r.db.Exec(query, userID, provider, encryptedKey)
	return err
}

// GetAPIKey returns the stored encrypted key, or empty string when the
// user has no key for that provider.
func (r *userRepository) GetAPIKey(userID, provider string) (string, error) {
	var keys []string
	query := `SELECT encrypted_key FROM api_keys WHERE user_id = $1 AND provider = $2`
	if err := r.db.Select(&keys, query, userID, provider); err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", nil
	}
	return keys[0], nil
}

func (r *userRepository) ListAPIKeyProviders(userID string) ([]string, error) {
	providers := []string{}
	query := `SELECT provider FROM api_keys WHERE user_id = $1 ORDER BY provider`
	if err := r.db.Select(&providers, query, userID); err != nil {
		return nil, err
	}
	return providers, nil
}
