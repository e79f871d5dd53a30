package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questline-bot/questline/questline/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	// EnsureUser fetches a user, creating it if this is the first time the
	// id has been seen. The bool result is true when the user was created.
	// This is the only code path that creates users; read paths never do.
	EnsureUser(ctx context.Context, userID int64) (*models.User, bool, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByIDs(ctx context.Context, userIDs []int64) ([]*models.User, error)
}

type userRepository struct {
	db bun.IDB
}

func NewUserRepository(db bun.IDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) EnsureUser(ctx context.Context, userID int64) (*models.User, bool, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user = &models.User{
		ID:        userID,
		Level:     1,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(ctx)
	return users, err
}

func (r *userRepository) GetByIDs(ctx context.Context, userIDs []int64) ([]*models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Where("id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	return users, err
}
