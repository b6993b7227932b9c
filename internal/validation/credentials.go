package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// UsernamePattern определяет допустимый формат GitHub username:
// латинские буквы, цифры и одиночные дефисы, не в начале и не в конце.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9])*$`)

// GistIDPattern matches gist ids: lowercase hex for current gists, digits for old ones.
var GistIDPattern = regexp.MustCompile(`^[0-9a-f]+$`)

const (
	// MaxUsernameLen максимальная длина GitHub username
	MaxUsernameLen = 39
	// MinTokenLen минимальная длина personal access token
	MinTokenLen = 20
	// MinPassphraseLen минимальная длина passphrase для хранилища токена
	MinPassphraseLen = 12
)

// Credentials are the values needed to talk to the remote store.
type Credentials struct {
	Username string `validate:"required,max=39,github_username"`
	Token    string `validate:"required,min=20,no_spaces"`
	GistID   string `validate:"omitempty,gist_id"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("github_username", func(fl validator.FieldLevel) bool {
			return UsernamePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("no_spaces", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
		})
		_ = validate.RegisterValidation("gist_id", func(fl validator.FieldLevel) bool {
			return GistIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidateCredentials checks that credentials are present and well-formed.
// The first failing field is reported.
func ValidateCredentials(c Credentials) error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s cannot be empty", field)
	case "github_username":
		return fmt.Errorf("username can only contain letters, numbers and single hyphens")
	case "gist_id":
		return fmt.Errorf("gist id must be a hexadecimal string")
	case "min":
		return fmt.Errorf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s characters", field, fe.Param())
	case "no_spaces":
		return fmt.Errorf("%s must not contain spaces", field)
	default:
		return fmt.Errorf("%s is invalid (%s)", field, fe.Tag())
	}
}

// ValidateUsername проверяет GitHub username
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}
	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers and single hyphens")
	}
	return nil
}

// ValidateGistID checks a gist id. Empty ids are rejected.
func ValidateGistID(id string) error {
	if id == "" {
		return fmt.Errorf("gist id cannot be empty")
	}
	if !GistIDPattern.MatchString(id) {
		return fmt.Errorf("gist id must be a hexadecimal string")
	}
	return nil
}

// ValidatePassphrase проверяет минимальные требования к passphrase
func ValidatePassphrase(passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase cannot be empty")
	}
	if len(passphrase) < MinPassphraseLen {
		return fmt.Errorf("passphrase must be at least %d characters long", MinPassphraseLen)
	}
	return nil
}
