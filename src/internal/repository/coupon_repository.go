package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type CouponRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewCouponRepository(db mysql.DBInterface) *CouponRepositoryMySQL {
	return &CouponRepositoryMySQL{DB: db}
}

func (r *CouponRepositoryMySQL) Insert(ctx context.Context, coupon *entity.Coupon) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO coupons (code, tenant_id, name, discount_type, discount_value, max_discount, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		coupon.Code, coupon.TenantID, coupon.Name, coupon.DiscountType,
		coupon.DiscountValue, coupon.MaxDiscount, coupon.Active, coupon.CreatedAt,
	)
	return err
}

func (r *CouponRepositoryMySQL) FindByCode(ctx context.Context, tenantID, code string) (*entity.Coupon, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var coupon entity.Coupon
	query := `
		SELECT code, tenant_id, name, discount_type, discount_value, max_discount, active, created_at
		FROM coupons
		WHERE tenant_id = ? AND code = ?
	`
	err = db.GetContext(ctx, &coupon, query, tenantID, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &coupon, nil
}
