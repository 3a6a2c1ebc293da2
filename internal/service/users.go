package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/apperr"
	"github.com/arikankainen/consequat-server/internal/auth"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/store"
)

type UserService struct {
	store store.Store
	codec *auth.TokenCodec
	log   *zap.SugaredLogger
}

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Fullname string
}

// EditUserInput updates the caller's own profile. Changing the password
// requires the old one.
type EditUserInput struct {
	Email       *string
	OldPassword *string
	NewPassword *string
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.store.Users().All(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.store.Users().ByUsername(ctx, username)
}

func (s *UserService) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users().ByID(ctx, id)
}

// Me reloads the current user so the response reflects any mutation made
// earlier in the same request.
func (s *UserService) Me(ctx context.Context, actor *models.User) (*models.User, error) {
	if actor == nil {
		return nil, nil
	}
	return s.store.Users().ByID(ctx, actor.ID)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	err := validate(map[string]string{
		"username": in.Username,
		"password": in.Password,
		"email":    in.Email,
		"fullname": in.Fullname,
	}, createUserRules())
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: in.Username,
		Password: hash,
		Email:    in.Email,
		Fullname: in.Fullname,
		IsAdmin:  false,
		Photos:   []string{},
		Albums:   []string{},
	}
	if err := s.store.Users().Insert(ctx, user); err != nil {
		if dup, ok := apperr.AsDuplicate(err); ok {
			return nil, apperr.NewInputError(dup.Error(), map[string]interface{}{
				dup.Field: "",
			})
		}
		return nil, err
	}

	s.log.Infow("user created", "username", user.Username)
	return user, nil
}

func (s *UserService) Edit(ctx context.Context, actor *models.User, in EditUserInput) (*models.User, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	var email, hash *string

	if in.Email != nil {
		if !validEmail(*in.Email) {
			return nil, apperr.NewInputError("email must be valid", map[string]interface{}{"email": *in.Email})
		}
		email = in.Email
	}

	if in.NewPassword != nil {
		if in.OldPassword == nil || !auth.CheckPassword(actor.Password, *in.OldPassword) {
			return nil, apperr.ErrWrongCredentials
		}
		if len(*in.NewPassword) < 5 {
			return nil, apperr.NewInputError("password must be at least 5 characters", map[string]interface{}{"newPassword": ""})
		}
		h, err := auth.HashPassword(*in.NewPassword)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	if err := s.store.Users().UpdateProfile(ctx, actor.ID, email, hash); err != nil {
		if dup, ok := apperr.AsDuplicate(err); ok {
			return nil, apperr.NewInputError(dup.Error(), map[string]interface{}{dup.Field: ""})
		}
		return nil, err
	}
	return s.store.Users().ByID(ctx, actor.ID)
}

// Delete removes the named account. Only the account owner or an admin may do
// it. Owned photos, albums and comments are left in place.
func (s *UserService) Delete(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if actor == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	user, err := s.store.Users().ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if actor.IsAdmin {
			return nil, apperr.ErrUserNotFound
		}
		return nil, apperr.ErrNotAuthenticated
	}
	if !actor.IsAdmin && actor.ID != user.ID {
		return nil, apperr.ErrNotAuthenticated
	}

	if err := s.store.Users().Delete(ctx, user.ID); err != nil {
		return nil, err
	}
	s.log.Infow("user deleted", "username", user.Username)
	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.Users().ByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return "", apperr.ErrWrongCredentials
	}
	return s.codec.Sign(user.Username, user.ID)
}
