package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

// UserService lets admins grant and revoke the writer and admin roles.
type UserService interface {
	GrantAdmin(ctx context.Context, actor models.Actor, username string) (*models.User, error)
	RevokeAdmin(ctx context.Context, actor models.Actor, username string) (*models.User, error)
	GrantWriter(ctx context.Context, actor models.Actor, username string) (*models.User, error)
	RevokeWriter(ctx context.Context, actor models.Actor, username string) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GrantAdmin(ctx context.Context, actor models.Actor, username string) (*models.User, error) {
	return s.change(ctx, actor, username, func(u *models.User) error {
		if u.IsAdmin {
			return models.ConflictError(fmt.Sprintf("user '%s' is already an admin", u.Username))
		}
		u.IsAdmin = true
		return nil
	})
}

func (s *userService) RevokeAdmin(ctx context.Context, actor models.Actor, username string) (*models.User, error) {
	return s.change(ctx, actor, username, func(u *models.User) error {
		if !u.IsAdmin {
			return models.ConflictError(fmt.Sprintf("user '%s' is not an admin", u.Username))
		}
		if u.ID == actor.UserID {
			return models.ValidationError("you cannot remove your own admin privileges")
		}
		u.IsAdmin = false
		return nil
	})
}

func (s *userService) GrantWriter(ctx context.Context, actor models.Actor, username string) (*models.User, error) {
	return s.change(ctx, actor, username, func(u *models.User) error {
		if u.IsWriter {
			return models.ConflictError(fmt.Sprintf("user '%s' is already a writer", u.Username))
		}
		u.IsWriter = true
		return nil
	})
}

// RevokeWriter leaves the user's pending articles in the moderation queue.
func (s *userService) RevokeWriter(ctx context.Context, actor models.Actor, username string) (*models.User, error) {
	return s.change(ctx, actor, username, func(u *models.User) error {
		if !u.IsWriter {
			return models.ConflictError(fmt.Sprintf("user '%s' is not a writer", u.Username))
		}
		u.IsWriter = false
		return nil
	})
}

func (s *userService) change(ctx context.Context, actor models.Actor, username string, apply func(*models.User) error) (*models.User, error) {
	if err := Authorize(actor, OpManageRoles); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NotFoundError(fmt.Sprintf("user '%s' not found", username))
	}
	if err != nil {
		return nil, err
	}
	if err := apply(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRoles(ctx, user.ID, user.IsWriter, user.IsAdmin); err != nil {
		return nil, err
	}

	s.logger.Info("user roles changed",
		"user", user.Username,
		"is_writer", user.IsWriter,
		"is_admin", user.IsAdmin,
		"admin", actor.Username,
	)
	return user, nil
}
