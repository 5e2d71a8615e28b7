package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/veldt-labs/auth-service/internal/auth/errors"
	"github.com/veldt-labs/auth-service/internal/auth/model"
)

const uniqueViolation = "23505"

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isDuplicate(err) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "CreateUser")
	}
	return user, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByUsernameOrEmail")
	}
	return u, nil
}

func (p *PostgresUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SetRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

// RotateRefreshToken is the reuse-detection compare-and-swap: one UPDATE
// guarded by the current token value. Two concurrent presentations of the
// same token race on this statement and exactly one sees a row change.
func (p *PostgresUserRepo) RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) (bool, error) {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, current).
		Update("refresh_token", next)
	if err := res.Error; err != nil {
		return false, customErrors.WrapInternal(err, "RotateRefreshToken")
	}
	return res.RowsAffected == 1, nil
}

func (p *PostgresUserRepo) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", "")
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "ClearRefreshToken")
	}
	// zero rows means the user is gone; logout stays idempotent either way
	return nil
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
