package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Credentials is the terminal login, injected at construction instead
// of living in module-level globals or the config file.
type Credentials struct {
	Login    int64
	Password string
	Server   string
}

// LoadCredentials reads MT5_LOGIN, MT5_PASSWORD and MT5_SERVER from
// the process environment, seeding it from .env when present. All
// three are required.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load()

	loginStr := os.Getenv("MT5_LOGIN")
	password := os.Getenv("MT5_PASSWORD")
	server := os.Getenv("MT5_SERVER")

	if loginStr == "" || password == "" || server == "" {
		return Credentials{}, fmt.Errorf("MT5_LOGIN, MT5_PASSWORD and MT5_SERVER must be set")
	}

	login, err := strconv.ParseInt(loginStr, 10, 64)
	if err != nil {
		return Credentials{}, fmt.Errorf("MT5_LOGIN must be an account number: %w", err)
	}

	return Credentials{Login: login, Password: password, Server: server}, nil
}
