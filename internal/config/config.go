package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          int
	StorageDriver string
	LogLevel      logrus.Level

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	OperatorWorkers     int
	UniqueCategoryNames bool
	UniqueGoalNames     bool
	BcryptCost          int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:          9446,
		StorageDriver: "postgres",
		LogLevel:      logrus.InfoLevel,

		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		OperatorWorkers:     4,
		UniqueCategoryNames: true,
		UniqueGoalNames:     false,
		BcryptCost:          bcrypt.DefaultCost,
	}

	setString(&env.StorageDriver, "STORAGE_DRIVER")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")

	if err := setInt(&env.Port, "PORT"); err != nil {
		return nil, err
	}
	if err := setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"); err != nil {
		return nil, err
	}
	if err := setInt(&env.BcryptCost, "BCRYPT_COST"); err != nil {
		return nil, err
	}
	if err := setBool(&env.UniqueCategoryNames, "UNIQUE_CATEGORY_NAMES"); err != nil {
		return nil, err
	}
	if err := setBool(&env.UniqueGoalNames, "UNIQUE_GOAL_NAMES"); err != nil {
		return nil, err
	}

	if v := os.Getenv("LOG_LEVEL"); len(v) != 0 {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if env.StorageDriver != "postgres" && env.StorageDriver != "memory" {
		return nil, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", env.StorageDriver)
	}
	if env.OperatorWorkers < 1 {
		return nil, fmt.Errorf("OPERATOR_WORKERS: must be at least 1, got %d", env.OperatorWorkers)
	}
	if env.BcryptCost < bcrypt.MinCost || env.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST: must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, env.BcryptCost)
	}

	return &env, nil
}

// PostgresDSN builds the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if len(v) == 0 {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if len(v) == 0 {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
