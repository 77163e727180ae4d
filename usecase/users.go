package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/pkg/apperrors"
	"main/services"
	"main/utils"
)

// UsersStore is the persistence boundary for accounts.
type UsersStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type UserService struct {
	UsersRepo UsersStore
}

// Register creates an account from an email/password pair. Emails are
// stored lowercased so lookups are case-insensitive.
func (svc *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !utils.ValidateEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !utils.ValidatePassword(password) {
		return nil, apperrors.ErrWeakPassword
	}

	existing, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailInUse
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTransient, err)
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	if err := svc.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords both come back as the same invalid-credential error so the form
// can't be used to probe which accounts exist.
func (svc *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredential
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, apperrors.ErrInvalidCredential
	}
	return user, nil
}
