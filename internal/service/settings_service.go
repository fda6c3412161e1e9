package service

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/apperrors"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/repository"
)

// marketAPIKeySetting is the system_setting key holding the encrypted
// market-data provider API key.
const marketAPIKeySetting = "market_api_key"

// SettingsService stores and retrieves system settings. Sensitive values
// (the provider API key) are fernet-encrypted before they reach the
// database, so the key is never persisted in the clear.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewSettingsService creates a new SettingsService.
// encryptionKey is a base64 fernet key; when empty, secret storage is
// disabled and callers fall back to environment configuration.
func NewSettingsService(settingRepo *repository.SettingRepository, encryptionKey string) (*SettingsService, error) {
	svc := &SettingsService{settingRepo: settingRepo}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid settings encryption key: %w", err)
		}
		svc.key = key
	}

	return svc, nil
}

// SecretsEnabled reports whether an encryption key was configured.
func (s *SettingsService) SecretsEnabled() bool {
	return s.key != nil
}

// SetMarketAPIKey encrypts and stores the provider API key.
func (s *SettingsService) SetMarketAPIKey(apiKey string) error {
	if s.key == nil {
		return fmt.Errorf("%w: no encryption key configured", apperrors.ErrFailedToStoreSetting)
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}

	return s.settingRepo.SetSetting(marketAPIKeySetting, string(token))
}

// GetMarketAPIKey retrieves and decrypts the stored provider API key.
// Returns ErrSettingNotFound when no key has been stored.
func (s *SettingsService) GetMarketAPIKey() (string, error) {
	if s.key == nil {
		return "", apperrors.ErrSettingNotFound
	}

	token, err := s.settingRepo.GetSetting(marketAPIKeySetting)
	if err != nil {
		return "", err
	}

	// TTL 0: stored settings do not expire.
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt stored api key")
	}

	return string(plain), nil
}
