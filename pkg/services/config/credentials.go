package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const apiKeyField = "api_key"

// Credentials reads FRED API keys from an ini file with one section per profile.
type Credentials interface {
	GetProfiles() ([]string, error)
	GetAPIKey(profile string) (string, error)
}

type cfgCredentials struct {
	cfg *ini.File
}

func NewCredentials(path string) (Credentials, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgCredentials{cfg: cfg}, nil
}

// DefaultCredentialsPath returns $HOME/.fredcfg.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".fredcfg"), nil
}

func (cc *cfgCredentials) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range cc.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cc *cfgCredentials) GetAPIKey(profile string) (string, error) {
	section, err := cc.cfg.GetSection(profile)
	if err != nil {
		return "", fmt.Errorf("profile %s not found", profile)
	}
	if !section.HasKey(apiKeyField) {
		return "", fmt.Errorf("profile %s has no %s", profile, apiKeyField)
	}
	return section.Key(apiKeyField).String(), nil
}

// ResolveAPIKey returns fred.api_key when set, otherwise the key of the
// configured profile in the credentials file at path.
func (c *Config) ResolveAPIKey(path string) (string, error) {
	if c.Fred.APIKey != "" {
		return c.Fred.APIKey, nil
	}
	creds, err := NewCredentials(path)
	if err != nil {
		return "", fmt.Errorf("failed to load credentials from %s: %w", path, err)
	}
	return creds.GetAPIKey(c.Fred.Profile)
}
