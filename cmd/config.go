package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMongoDB  = "mongodb"
)

type Config struct {
	HTTPPort             string        `validate:"required,numeric"`
	StorageDriver        string        `validate:"oneof=postgres mongodb"`
	DBHost               string        `validate:"required_if=StorageDriver postgres"`
	DBPort               string        `validate:"required_if=StorageDriver postgres"`
	DBUser               string        `validate:"required_if=StorageDriver postgres"`
	DBPassword           string
	DBName               string        `validate:"required_if=StorageDriver postgres"`
	DBSslMode            string        `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MongoURI             string        `validate:"required_if=StorageDriver mongodb"`
	MongoDatabase        string        `validate:"required_if=StorageDriver mongodb"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	LogFile              string
	CORSAllowedOrigins   []string      `validate:"dive,url"`
	OverdueCheckSchedule string        `validate:"required"`
	ShutdownTimeout      time.Duration `validate:"gt=0"`
}

var defaults = map[string]any{
	"HTTP_PORT":              "5000",
	"STORAGE_DRIVER":         StoragePostgres,
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "postgres",
	"DB_NAME":                "rollmill",
	"DB_SSLMODE":             "disable",
	"MONGO_URI":              "mongodb://localhost:27017",
	"MONGO_DATABASE":         "rollmill",
	"LOG_LEVEL":              "info",
	"CORS_ALLOWED_ORIGINS":   "http://localhost:5173,http://127.0.0.1:5173,http://localhost:8080,http://127.0.0.1:8080",
	"OVERDUE_CHECK_SCHEDULE": "0 */15 * * * *",
	"SHUTDOWN_TIMEOUT":       "10s",
}

// LoadConfig reads the environment, after loading envFile if it exists, and
// validates the result.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		StorageDriver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		MongoURI:             v.GetString("MONGO_URI"),
		MongoDatabase:        v.GetString("MONGO_DATABASE"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFile:              v.GetString("LOG_FILE"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		OverdueCheckSchedule: v.GetString("OVERDUE_CHECK_SCHEDULE"),
		ShutdownTimeout:      v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// PostgresDSN is the keyword/value connection string for the gorm driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
