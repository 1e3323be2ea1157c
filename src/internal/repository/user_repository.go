package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type UserRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewUserRepository(db mysql.DBInterface) *UserRepositoryMySQL {
	return &UserRepositoryMySQL{DB: db}
}

func (r *UserRepositoryMySQL) Insert(ctx context.Context, user *entity.User) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, tenant_id, role, full_name, email, mobile_number, markup_percent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		user.UserID, user.TenantID, user.Role, user.FullName,
		user.Email, user.MobileNumber, user.MarkupPercent, user.CreatedAt,
	)
	return err
}

func (r *UserRepositoryMySQL) FindByID(ctx context.Context, tenantID, id string) (*entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	query := `
		SELECT user_id, tenant_id, role, full_name, email, mobile_number, markup_percent, created_at, updated_at
		FROM users
		WHERE tenant_id = ? AND user_id = ?
	`
	err = db.GetContext(ctx, &user, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
