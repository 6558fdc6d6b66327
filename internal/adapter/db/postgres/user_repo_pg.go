package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"usuarios-service/internal/domain/user"
	apperrors "usuarios-service/pkg/errors"
	"usuarios-service/pkg/logger"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the usuarios table.
type UserSchema struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"` // UUIDv4 assigned on insert
	Name      string    `gorm:"not null"`
	Age       int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"` // Gives listings a stable insertion order
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "usuarios"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{ID: m.ID, Name: m.Name, Age: m.Age}
}

// AutoMigrate creates or updates the usuarios table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

// parseID rejects ids that are not UUIDs before they reach the database.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.NewValidationError("id", fmt.Sprintf("invalid id: %q is not a valid UUID", id))
	}
	return parsed.String(), nil
}

// Insert inserts a new user into the database.
func (r *UserRepoPG) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:   uuid.NewString(),
		Name: u.Name,
		Age:  u.Age,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithContext(ctx, r.log).Info("user created in db", zap.String("id", model.ID))
	return model.toDomain(), nil
}

// FindAll returns every user in insertion order.
// Driver errors are returned unwrapped; their text reaches the client.
func (r *UserRepoPG) FindAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&models).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}
	return users, nil
}

// FindByIDAndUpdate applies p to the user and returns the updated row,
// or nil, nil if the id matches nothing.
func (r *UserRepoPG) FindByIDAndUpdate(ctx context.Context, id string, p user.Patch) (*user.User, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var model UserSchema
	if err := db.First(&model, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithContext(ctx, r.log).Debug("user not found for update", zap.String("id", key))
			return nil, nil
		}
		logger.WithContext(ctx, r.log).Error("failed to get user from db", zap.Error(err), zap.String("id", key))
		return nil, err
	}

	if p.IsEmpty() {
		return model.toDomain(), nil
	}

	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Age != nil {
		changes["age"] = *p.Age
	}

	if err := db.Model(&UserSchema{}).Where("id = ?", key).Updates(changes).Error; err != nil {
		logger.WithContext(ctx, r.log).Error("failed to update user in db", zap.Error(err), zap.String("id", key))
		return nil, err
	}

	updated := p.Apply(*model.toDomain())
	logger.WithContext(ctx, r.log).Info("user updated in db", zap.String("id", key))
	return &updated, nil
}

// FindByIDAndDelete removes the user by ID. A missing row is not an error.
func (r *UserRepoPG) FindByIDAndDelete(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&UserSchema{}, "id = ?", key)
	if result.Error != nil {
		logger.WithContext(ctx, r.log).Error("failed to delete user in db", zap.Error(result.Error), zap.String("id", key))
		return result.Error
	}

	logger.WithContext(ctx, r.log).Info("user deleted in db", zap.String("id", key), zap.Int64("rows", result.RowsAffected))
	return nil
}

// Ping checks the underlying connection pool.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
