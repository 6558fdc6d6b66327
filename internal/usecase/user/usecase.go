package user

import (
	"context"

	"go.uber.org/zap"

	domain "usuarios-service/internal/domain/user"
	apperrors "usuarios-service/pkg/errors"
	"usuarios-service/pkg/logger"
)

// Repository defines the persistence gateway for user records.
// It abstracts the data layer, allowing different implementations
// (e.g., MongoDB, PostgreSQL) to be used interchangeably.
//
// A malformed id is reported as *apperrors.ValidationError. A well-formed id
// that matches nothing is not an error: FindByIDAndUpdate returns nil and
// FindByIDAndDelete returns nil.
type Repository interface {
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)                       // Insert a new user, assigning its ID
	FindAll(ctx context.Context) ([]domain.User, error)                                     // All users in store order
	FindByIDAndUpdate(ctx context.Context, id string, p domain.Patch) (*domain.User, error) // Apply p and return the updated user
	FindByIDAndDelete(ctx context.Context, id string) error                                 // Remove the user if present
	Ping(ctx context.Context) error                                                         // Check store connectivity
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo   Repository     // Repository for data access
	schema *domain.Schema // Field rules for user records
	log    *zap.Logger    // Logger for structured logging
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, schema: domain.NewSchema(), log: log}
}

// CreateUser validates the full record and persists it.
// Store failures are reported as a generic server error; the cause is only logged.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user")

	payload, err := uc.schema.Decode(domain.Input{Name: in.Name, Age: in.Age}, domain.Full)
	if err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, err
	}

	created, err := uc.repo.Insert(ctx, &domain.User{
		Name: *payload.Name,
		Age:  *payload.Age,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("server error", err)
	}

	return &CreateUserResponse{User: toDTO(*created)}, nil
}

// ListUsers returns every stored user in the store's natural order.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("listing users")

	domainUsers, err := uc.repo.FindAll(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	return &ListUsersResponse{Users: users}, nil
}

// UpdateUser validates the supplied fields and applies them to the user.
// An unknown id yields *apperrors.NotFoundError.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.String("id", in.ID))

	patch, err := uc.schema.Decode(domain.Input{Name: in.Name, Age: in.Age}, domain.Partial)
	if err != nil {
		log.Warn("validate failed", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	updated, err := uc.repo.FindByIDAndUpdate(ctx, in.ID, patch)
	if err != nil {
		log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		log.Warn("user not found", zap.String("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", "user not found")
	}

	return &UpdateUserResponse{User: toDTO(*updated)}, nil
}

// DeleteUser removes the user. Deleting an unknown id succeeds.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.String("id", in.ID))

	if err := uc.repo.FindByIDAndDelete(ctx, in.ID); err != nil {
		log.Error("failed to delete user", zap.String("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

func toDTO(u domain.User) User {
	return User{ID: u.ID, Name: u.Name, Age: u.Age}
}
