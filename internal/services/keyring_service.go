package services

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "chronicle"

// KeyringService stores provider API keys in the OS keychain. A small
// providers.json in the user config dir tracks which providers have a key,
// since keychains cannot be enumerated portably.
type KeyringService struct{}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

// APIKey satisfies config.SecretSource.
func (s *KeyringService) APIKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	return keyring.Get(keyringServiceName, provider)
}

func (s *KeyringService) StoreAPIKey(provider, apiKey string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	if err := keyring.Set(keyringServiceName, provider, apiKey); err != nil {
		return err
	}
	return s.addProvider(provider)
}

func (s *KeyringService) DeleteAPIKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if err := keyring.Delete(keyringServiceName, provider); err != nil {
		return err
	}
	return s.removeProvider(provider)
}

// ListProviders returns the providers that currently have a stored key.
func (s *KeyringService) ListProviders() ([]string, error) {
	providers, err := s.loadProviders()
	if err != nil {
		return nil, err
	}

	var results []string
	for _, provider := range providers {
		if _, err := keyring.Get(keyringServiceName, provider); err != nil {
			continue
		}
		results = append(results, provider)
	}
	return results, nil
}

func (s *KeyringService) providersConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(configDir, keyringServiceName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "providers.json"), nil
}

func (s *KeyringService) loadProviders() ([]string, error) {
	path, err := s.providersConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var providers []string
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *KeyringService) saveProviders(providers []string) error {
	path, err := s.providersConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(providers, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (s *KeyringService) addProvider(provider string) error {
	providers, err := s.loadProviders()
	if err != nil {
		return err
	}
	for _, p := range providers {
		if p == provider {
			return nil
		}
	}
	return s.saveProviders(append(providers, provider))
}

func (s *KeyringService) removeProvider(provider string) error {
	providers, err := s.loadProviders()
	if err != nil {
		return err
	}
	var kept []string
	for _, p := range providers {
		if p != provider {
			kept = append(kept, p)
		}
	}
	return s.saveProviders(kept)
}
