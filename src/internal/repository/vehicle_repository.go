package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type VehicleRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewVehicleRepository(db mysql.DBInterface) *VehicleRepositoryMySQL {
	return &VehicleRepositoryMySQL{DB: db}
}

func (r *VehicleRepositoryMySQL) Insert(ctx context.Context, vehicle *entity.Vehicle) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vehicles (id, tenant_id, plate_number, type, capacity, rate_per_trip, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		vehicle.ID, vehicle.TenantID, vehicle.PlateNumber, vehicle.Type,
		vehicle.Capacity, vehicle.RatePerTrip, vehicle.Status, vehicle.CreatedAt,
	)
	return err
}

func (r *VehicleRepositoryMySQL) FindByID(ctx context.Context, tenantID, id string) (*entity.Vehicle, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var vehicle entity.Vehicle
	query := `
		SELECT id, tenant_id, plate_number, type, capacity, rate_per_trip, status, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = ? AND id = ?
	`
	err = db.GetContext(ctx, &vehicle, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &vehicle, nil
}

func (r *VehicleRepositoryMySQL) ListByStatus(ctx context.Context, tenantID string, status entity.VehicleStatus) ([]entity.Vehicle, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	vehicles := []entity.Vehicle{}
	query := `
		SELECT id, tenant_id, plate_number, type, capacity, rate_per_trip, status, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = ? AND status = ?
		ORDER BY rate_per_trip, id
	`
	if err := db.SelectContext(ctx, &vehicles, query, tenantID, status); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *VehicleRepositoryMySQL) UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.VehicleStatus) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE vehicles
		SET status = ?, updated_at = NOW()
		WHERE tenant_id = ? AND id = ? AND status = ?
	`
	result, err := db.ExecContext(ctx, query, to, tenantID, id, from)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
