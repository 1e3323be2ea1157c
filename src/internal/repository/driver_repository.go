package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type DriverRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewDriverRepository(db mysql.DBInterface) *DriverRepositoryMySQL {
	return &DriverRepositoryMySQL{DB: db}
}

func (r *DriverRepositoryMySQL) Insert(ctx context.Context, driver *entity.Driver) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO drivers (id, tenant_id, full_name, mobile_number, license_no, status, vehicle_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		driver.ID, driver.TenantID, driver.FullName, driver.MobileNumber,
		driver.LicenseNo, driver.Status, driver.VehicleID, driver.CreatedAt,
	)
	return err
}

func (r *DriverRepositoryMySQL) FindByID(ctx context.Context, tenantID, id string) (*entity.Driver, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var driver entity.Driver
	query := `
		SELECT id, tenant_id, full_name, mobile_number, license_no, status, vehicle_id, created_at, updated_at
		FROM drivers
		WHERE tenant_id = ? AND id = ?
	`
	err = db.GetContext(ctx, &driver, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &driver, nil
}

func (r *DriverRepositoryMySQL) ListByStatus(ctx context.Context, tenantID string, status entity.DriverStatus) ([]entity.Driver, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	drivers := []entity.Driver{}
	query := `
		SELECT id, tenant_id, full_name, mobile_number, license_no, status, vehicle_id, created_at, updated_at
		FROM drivers
		WHERE tenant_id = ? AND status = ?
		ORDER BY id
	`
	if err := db.SelectContext(ctx, &drivers, query, tenantID, status); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *DriverRepositoryMySQL) UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.DriverStatus, vehicleID *string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE drivers
		SET status = ?, vehicle_id = ?, updated_at = NOW()
		WHERE tenant_id = ? AND id = ? AND status = ?
	`
	result, err := db.ExecContext(ctx, query, to, vehicleID, tenantID, id, from)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
