// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and IronCore contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/ironcore-dev/hardware-inventory/internal/i18n"
)

const (
	// UsernameEnvVar holds the BMC username if it is not configured otherwise.
	UsernameEnvVar = "BMC_USERNAME"
	// PasswordEnvVar holds the BMC password if it is not configured otherwise.
	PasswordEnvVar = "BMC_PASSWORD"

	DefaultListenAddress   = ":8082"
	DefaultRefreshInterval = 5 * time.Minute
	DefaultConcurrency     = 8
	DefaultLanguage        = "en"
)

// Config holds the connection details of the BMC and the settings of the
// inventory service.
type Config struct {
	Endpoint  string `json:"endpoint,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	BasicAuth bool   `json:"basicAuth,omitempty"`
	Insecure  bool   `json:"insecure,omitempty"`

	ListenAddress   string          `json:"listenAddress,omitempty"`
	RefreshInterval metav1.Duration `json:"refreshInterval,omitempty"`
	Concurrency     int             `json:"concurrency,omitempty"`
	Language        string          `json:"language,omitempty"`
}

// Load reads the configuration file at path. An empty path yields the defaults.
// Credentials missing from the file are taken from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
		}
	}
	cfg.Default()
	cfg.ApplyEnv()
	return cfg, nil
}

// Default fills unset fields with their default values.
func (c *Config) Default() {
	if c.ListenAddress == "" {
		c.ListenAddress = DefaultListenAddress
	}
	if c.RefreshInterval.Duration == 0 {
		c.RefreshInterval.Duration = DefaultRefreshInterval
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
}

// ApplyEnv sets the credentials from the environment if they are unset.
func (c *Config) ApplyEnv() {
	if username, ok := os.LookupEnv(UsernameEnvVar); ok && c.Username == "" {
		c.Username = username
	}
	if password, ok := os.LookupEnv(PasswordEnvVar); ok && c.Password == "" {
		c.Password = password
	}
}

// Validate checks that the BMC can be reached with the configuration.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("BMC endpoint must be set")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if _, ok := i18n.ParseTag(c.Language); !ok {
		return fmt.Errorf("invalid language %q", c.Language)
	}
	return nil
}
