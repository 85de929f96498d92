// Package services contains server-side business logic. This file implements
// UserService: the account lifecycle (creation, activation, password reset,
// deletion) and the authentication flows built on top of it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov3/simpledb/internal/common"
	"github.com/avolkov3/simpledb/internal/dbx"
	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/auth"
	"github.com/avolkov3/simpledb/internal/server/config"
	"github.com/avolkov3/simpledb/internal/server/mail"
	"github.com/avolkov3/simpledb/internal/server/models"
	"github.com/avolkov3/simpledb/internal/server/repositories/repomanager"
)

// UserService provides account and authentication operations:
//   - CreateAccount: insert a pending user plus temp credential, email it
//   - Activate: exchange the temp password for a permanent one
//   - ForgotUsername / ForgotPassword: email-based recovery
//   - Login: verify credentials and mint a session token
//   - Authenticate: verify a token and re-fetch the user it names
//   - DeleteAccount: cascade-remove credential, entries, user
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	mailer                      mail.Sender
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	storageTimeout              time.Duration
}

// NewUserService constructs a UserService using repositories, the email
// collaborator, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Sender, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		mailer:                      mailer,
		logger:                      logger.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		storageTimeout:              cfg.StorageTimeout,
	}
}

// storageCtx bounds a storage operation so a slow backend cannot hold the
// request handler indefinitely.
func (s *UserService) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}

// CreateAccount inserts a pending user with a freshly generated temporary
// password and mails it to the given address. The user and credential rows
// are committed in one transaction before the mail is attempted, so a
// delivery failure leaves a retriable (forgot_password) state behind.
// A taken username or email yields common.ErrorAlreadyExists.
func (s *UserService) CreateAccount(ctx context.Context, username string, email string) error {
	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return common.ErrorInternal
	}
	tempHash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return common.ErrorInternal
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	err = dbx.WithTx(sctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: tempHash,
			IsValidated:  false,
		}
		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.repomanager.PendingCredentials(tx).Replace(ctx, username, tempHash)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	if err := s.mailer.Send(ctx, mail.AccountCreatedMessage(email, username, tempPassword)); err != nil {
		s.logger.Error(ctx, "temp password delivery failed", "username", username, "error", err.Error())
		return common.ErrorDelivery
	}

	return nil
}

// Activate consumes the pending credential: it verifies tempPassword against
// the stored one-time hash, sets the permanent password, flips is_validated,
// and deletes the credential, all in one transaction. This is the only path
// that validates an account.
func (s *UserService) Activate(ctx context.Context, username string, tempPassword string, newPassword string) error {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	if _, err := s.repomanager.Users(s.db).GetByUsername(sctx, username); err != nil {
		return err
	}

	cred, err := s.repomanager.PendingCredentials(s.db).Get(sctx, username)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(cred.PasswordHash, tempPassword) {
		return common.ErrorUnauthorized
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(sctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).SetPassword(ctx, username, newHash, true); err != nil {
			return err
		}
		return s.repomanager.PendingCredentials(tx).Delete(ctx, username)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error activating account: %w", err)
	}

	return nil
}

// ForgotUsername emails the username registered for the given address.
func (s *UserService) ForgotUsername(ctx context.Context, email string) error {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByEmail(sctx, email)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, mail.ForgotUsernameMessage(email, user.Username)); err != nil {
		s.logger.Error(ctx, "username reminder delivery failed", "username", user.Username, "error", err.Error())
		return common.ErrorDelivery
	}

	return nil
}

// ForgotPassword issues a fresh temporary password for the account registered
// under email, superseding any existing pending credential, and mails it.
// The credential is committed before delivery is attempted.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByEmail(sctx, email)
	if err != nil {
		return err
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return common.ErrorInternal
	}
	tempHash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(sctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.PendingCredentials(tx).Replace(ctx, user.Username, tempHash)
	})
	if err != nil {
		return fmt.Errorf("error issuing temp credential: %w", err)
	}

	if err := s.mailer.Send(ctx, mail.ForgotPasswordMessage(email, user.Username, tempPassword)); err != nil {
		s.logger.Error(ctx, "temp password delivery failed", "username", user.Username, "error", err.Error())
		return common.ErrorDelivery
	}

	return nil
}

// Login verifies the credentials and, on success, returns a signed session
// token. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, username string, password string) (string, error) {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByUsername(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authenticate verifies the token and re-fetches the user it names. The
// re-fetch covers the deleted-after-issue case; an unvalidated account is
// rejected with common.ErrorNotValidated.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := auth.GetUsernameFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByUsername(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !user.IsValidated {
		return nil, common.ErrorNotValidated
	}

	return user, nil
}

// DeleteAccount removes the pending credential, every entry owned by the
// user, and the user row in that order, inside one transaction.
func (s *UserService) DeleteAccount(ctx context.Context, username string) error {
	sctx, cancel := s.storageCtx(ctx)
	defer cancel()

	err := dbx.WithTx(sctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.PendingCredentials(tx).Delete(ctx, username); err != nil {
			return err
		}
		if _, err := s.repomanager.Entries(tx).DeleteAllForOwner(ctx, username); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, username)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting account: %w", err)
	}

	return nil
}
