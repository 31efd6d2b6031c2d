package service

import (
	"fmt"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/crypto"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"
)

// KeyStore hands out decrypted provider API keys. An empty string with a
// nil error means the user simply has no key for that provider.
type KeyStore interface {
	DecryptedKey(userID string, provider llm.Provider) (string, error)
}

type apiKeyStore struct {
	users  repository.UserRepository
	cipher *crypto.Cipher
}

func NewKeyStore(users repository.UserRepository, cipher *crypto.Cipher) KeyStore {
	return &apiKeyStore{users: users, cipher: cipher}
}

func (s *apiKeyStore) DecryptedKey(userID string, provider llm.Provider) (string, error) {
	encrypted, err := s.users.GetAPIKey(userID, string(provider))
	if err != nil {
		return "", fmt.Errorf("failed to load api key: %w", err)
	}
	if encrypted == "" {
		return "", nil
	}

	key, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt api key: %w", err)
	}
	return key, nil
}
