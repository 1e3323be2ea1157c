package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type BookingRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewBookingRepository(db mysql.DBInterface) *BookingRepositoryMySQL {
	return &BookingRepositoryMySQL{DB: db}
}

func (r *BookingRepositoryMySQL) Insert(ctx context.Context, booking *entity.Booking) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (
			id, tenant_id, customer_id, route_id, kind, status,
			driver_id, vehicle_id, adults, children, price, payment_method, details,
			pickup_lat, pickup_lng, drop_lat, drop_lng, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		booking.ID, booking.TenantID, booking.CustomerID, booking.RouteID,
		booking.Kind, booking.Status, booking.DriverID, booking.VehicleID,
		booking.Adults, booking.Children, booking.Price, booking.PaymentMethod, booking.Details,
		booking.PickupLat, booking.PickupLng, booking.DropLat, booking.DropLng,
		booking.CreatedAt,
	)
	return err
}

func (r *BookingRepositoryMySQL) FindByID(ctx context.Context, tenantID, id string) (*entity.Booking, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var booking entity.Booking
	query := `
		SELECT id, tenant_id, customer_id, route_id, kind, status,
		       driver_id, vehicle_id, adults, children, price, payment_method, details,
		       pickup_lat, pickup_lng, drop_lat, drop_lng, created_at, completed_at
		FROM bookings
		WHERE tenant_id = ? AND id = ?
	`
	err = db.GetContext(ctx, &booking, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepositoryMySQL) List(ctx context.Context, tenantID string, filter entity.BookingFilter) ([]entity.Booking, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, tenant_id, customer_id, route_id, kind, status,
		       driver_id, vehicle_id, adults, children, price, payment_method, details,
		       pickup_lat, pickup_lng, drop_lat, drop_lng, created_at, completed_at
		FROM bookings
		WHERE tenant_id = ?
	`
	args := []interface{}{tenantID}
	if filter.CustomerID != nil {
		query += " AND customer_id = ?"
		args = append(args, *filter.CustomerID)
	}
	if filter.DriverID != nil {
		query += " AND driver_id = ?"
		args = append(args, *filter.DriverID)
	}
	if filter.Status != nil {
		query += " AND status = ?"
		args = append(args, *filter.Status)
	}
	query += " ORDER BY created_at"

	bookings := []entity.Booking{}
	if err := db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryMySQL) UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.BookingStatus, driverID, vehicleID *string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE bookings
		SET status = ?,
		    driver_id = CASE WHEN ? = 'CANCELLED' THEN NULL ELSE COALESCE(?, driver_id) END,
		    vehicle_id = CASE WHEN ? = 'CANCELLED' THEN NULL ELSE COALESCE(?, vehicle_id) END,
		    completed_at = CASE WHEN ? = 'COMPLETED' THEN NOW() ELSE completed_at END
		WHERE tenant_id = ? AND id = ? AND status = ?
	`
	result, err := db.ExecContext(ctx, query, to, to, driverID, to, vehicleID, to, tenantID, id, from)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
