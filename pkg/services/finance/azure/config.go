package azure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

type Config struct {
	SubscriptionID string
	TenantID       string
	Credentials    *azidentity.AzureCLICredential
}

// ConfigPath is the ini file profiles are read from.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".azure", "config"), nil
}

// LoadConfig reads the subscription for profile from path and builds CLI
// credentials scoped to its tenant.
func LoadConfig(path, profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	config := &Config{
		SubscriptionID: section.Key("subscription").String(),
		TenantID:       section.Key("tenant").String(),
	}
	if config.SubscriptionID == "" {
		return nil, fmt.Errorf("subscription ID not found in profile %s", profile)
	}

	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: config.TenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	config.Credentials = cred

	return config, nil
}
