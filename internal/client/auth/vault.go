// Package auth stores the GitHub credentials encrypted at rest.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/iudanet/novelsync/internal/client/storage"
	"github.com/iudanet/novelsync/internal/crypto"
	"github.com/iudanet/novelsync/internal/validation"
)

// ErrWrongPassphrase is returned when the stored token cannot be decrypted.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// Credentials are the plaintext GitHub credentials.
type Credentials struct {
	Username string
	Token    string
}

// Vault implements the encryption layer between business logic and
// storage. The token is encrypted before saving and decrypted when loaded;
// the key is derived from a passphrase and is never stored.
type Vault struct {
	storage storage.AuthStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewVault creates a vault over storage
func NewVault(storage storage.AuthStorage, logger *slog.Logger) *Vault {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Vault{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Save validates creds and stores them with the token encrypted under passphrase.
func (v *Vault) Save(ctx context.Context, creds Credentials, passphrase string) error {
	if err := validation.ValidateCredentials(validation.Credentials{
		Username: creds.Username,
		Token:    creds.Token,
	}); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if err := validation.ValidatePassphrase(passphrase); err != nil {
		return fmt.Errorf("invalid passphrase: %w", err)
	}

	// 1. Генерируем соль
	salt, err := crypto.GenerateSaltBase64()
	if err != nil {
		return err
	}

	// 2. Деривируем ключ из passphrase
	key, err := crypto.DeriveKeyFromBase64Salt(passphrase, creds.Username, salt)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}

	// 3. Шифруем токен, username связан с шифртекстом как associated data
	sealed, err := crypto.SealString(creds.Token, key, []byte(creds.Username))
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	if err := v.storage.SaveAuth(ctx, &storage.AuthData{
		Username: creds.Username,
		Token:    sealed,
		Salt:     salt,
		SavedAt:  v.now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	v.logger.Info("credentials saved", "username", creds.Username)
	return nil
}

// Load decrypts the stored credentials.
// Returns storage.ErrAuthNotFound when nothing is stored.
func (v *Vault) Load(ctx context.Context, passphrase string) (*Credentials, error) {
	stored, err := v.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKeyFromBase64Salt(passphrase, stored.Username, stored.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	token, err := crypto.OpenString(stored.Token, key, []byte(stored.Username))
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	return &Credentials{Username: stored.Username, Token: token}, nil
}

// Username returns the stored username without decrypting anything.
func (v *Vault) Username(ctx context.Context) (string, error) {
	stored, err := v.storage.GetAuth(ctx)
	if err != nil {
		return "", err
	}
	return stored.Username, nil
}

// Exists reports whether credentials are stored.
func (v *Vault) Exists(ctx context.Context) (bool, error) {
	_, err := v.storage.GetAuth(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Delete removes the stored credentials (logout).
// Удаление отсутствующих данных не считается ошибкой
func (v *Vault) Delete(ctx context.Context) error {
	if err := v.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	v.logger.Info("credentials removed")
	return nil
}
