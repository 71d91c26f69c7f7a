package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPort = 3009

type Secrets struct {
	Alpaca AlpacaSecrets `json:"alpaca" yaml:"alpaca"`
	Jwt    string        `json:"jwt" yaml:"jwt"`
	Port   int           `json:"port" yaml:"port"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey" yaml:"apiKey"`
	ApiSecret string `json:"apiSecret" yaml:"apiSecret"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
}

func (a AlpacaSecrets) Validate() error {
	if a.ApiKey == "" || a.ApiSecret == "" {
		return fmt.Errorf("missing alpaca credentials: set alpaca.apiKey/apiSecret or ALPACA_KEY/ALPACA_SECRET")
	}
	return nil
}

func secretsFile() string {
	if f := os.Getenv("SECRETS_FILE"); f != "" {
		return f
	}
	switch os.Getenv("ALPHA_ENV") {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "secrets.json"
}

// LoadSecrets reads .env, then the secrets file if there is one, then lets
// ALPACA_KEY, ALPACA_SECRET, ALPACA_DOMAIN, JWT_SECRET and PORT override it.
func LoadSecrets() (*Secrets, error) {
	// .env is optional
	_ = godotenv.Load()

	secrets := Secrets{}
	f, err := os.ReadFile(secretsFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile(), err)
	}
	if err == nil {
		if err := parseSecrets(f, &secrets); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", secretsFile(), err)
		}
	}

	if err := applyEnv(&secrets); err != nil {
		return nil, err
	}

	if secrets.Port == 0 {
		secrets.Port = DefaultPort
	}

	return &secrets, nil
}

// yaml first, json as a fallback for files yaml chokes on
func parseSecrets(b []byte, out *Secrets) error {
	if err := yaml.Unmarshal(b, out); err != nil {
		if jsonErr := json.Unmarshal(b, out); jsonErr != nil {
			return fmt.Errorf("tried yaml and json: %w", jsonErr)
		}
	}
	return nil
}

func applyEnv(s *Secrets) error {
	if v := os.Getenv("ALPACA_KEY"); v != "" {
		s.Alpaca.ApiKey = v
	}
	if v := os.Getenv("ALPACA_SECRET"); v != "" {
		s.Alpaca.ApiSecret = v
	}
	if v := os.Getenv("ALPACA_DOMAIN"); v != "" {
		s.Alpaca.Endpoint = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		s.Jwt = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = port
	}
	return nil
}
