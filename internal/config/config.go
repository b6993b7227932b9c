// Package config loads the novelsync configuration from a YAML file,
// a .env file and NOVELSYNC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration
type Config struct {
	Remote RemoteConfig `yaml:"remote"`
	Sync   SyncConfig   `yaml:"sync"`
	Log    LogConfig    `yaml:"log"`
	DBPath string       `yaml:"db_path" validate:"required"`

	// Token и Passphrase приходят только из окружения и никогда не пишутся в файл
	Token      string `yaml:"-"`
	Passphrase string `yaml:"-"`
}

// RemoteConfig holds the Gist API settings
type RemoteConfig struct {
	APIURL           string        `yaml:"api_url" validate:"required,url"`
	Username         string        `yaml:"username,omitempty" validate:"omitempty,max=39"`
	RequestTimeout   time.Duration `yaml:"request_timeout" validate:"gte=1s"`
	BatchSize        int           `yaml:"batch_size" validate:"min=1,max=100"`
	MaxRetries       int           `yaml:"max_retries" validate:"min=0,max=10"`
	FetchConcurrency int           `yaml:"fetch_concurrency" validate:"min=1,max=32"`
}

// SyncConfig holds sync-related settings
type SyncConfig struct {
	Interval        time.Duration `yaml:"interval" validate:"gte=10s"`
	Resolution      string        `yaml:"resolution" validate:"oneof=ask newest local remote"`
	VerifyTolerance float64       `yaml:"verify_tolerance" validate:"gte=0,lt=1"`
	MaxFileBytes    int           `yaml:"max_file_bytes" validate:"min=1024"`
	Compress        bool          `yaml:"compress"`
}

// LogConfig holds logging-related settings
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=text json"`
	File       string `yaml:"file,omitempty"` // пустое значение: stderr
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"min=0"`
}

// Resolution strategies for conflicts found during sync.
const (
	ResolutionAsk    = "ask"
	ResolutionNewest = "newest"
	ResolutionLocal  = "local"
	ResolutionRemote = "remote"
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			APIURL:           "https://api.github.com",
			RequestTimeout:   30 * time.Second,
			BatchSize:        10,
			MaxRetries:       3,
			FetchConcurrency: 4,
		},
		Sync: SyncConfig{
			Interval:        5 * time.Minute,
			Resolution:      ResolutionAsk,
			VerifyTolerance: 0.05,
			MaxFileBytes:    900 * 1024,
			Compress:        false,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		DBPath: defaultDBPath(),
	}
}

// ValidationError describes the first invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// в ошибках используем имена ключей из YAML
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	// Namespace имеет вид "Config.remote.api_url"
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	return &ValidationError{Field: field, Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
