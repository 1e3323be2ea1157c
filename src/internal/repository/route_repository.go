package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type RouteRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewRouteRepository(db mysql.DBInterface) *RouteRepositoryMySQL {
	return &RouteRepositoryMySQL{DB: db}
}

func (r *RouteRepositoryMySQL) Insert(ctx context.Context, route *entity.Route) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO routes (id, tenant_id, kind, name, origin, destination, base_price, child_price, seats_available, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.ExecContext(ctx, query,
		route.ID, route.TenantID, route.Kind, route.Name, route.Origin,
		route.Destination, route.BasePrice, route.ChildPrice, route.SeatsAvailable,
		route.CreatedAt,
	); err != nil {
		return err
	}

	for _, s := range route.Surcharges {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO route_surcharges (route_id, tenant_id, amount) VALUES (?, ?, ?)
			 ON DUPLICATE KEY UPDATE amount = VALUES(amount)`,
			route.ID, s.TenantID, s.Amount,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *RouteRepositoryMySQL) FindByID(ctx context.Context, tenantID, id string) (*entity.Route, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var route entity.Route
	query := `
		SELECT id, tenant_id, kind, name, origin, destination, base_price, child_price, seats_available, created_at
		FROM routes
		WHERE tenant_id = ? AND id = ?
	`
	err = db.GetContext(ctx, &route, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	surcharges := []entity.RouteSurcharge{}
	err = db.SelectContext(ctx, &surcharges,
		`SELECT route_id, tenant_id, amount FROM route_surcharges WHERE route_id = ?`, id)
	if err != nil {
		return nil, err
	}
	route.Surcharges = surcharges

	return &route, nil
}

func (r *RouteRepositoryMySQL) List(ctx context.Context, tenantID string) ([]entity.Route, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	routes := []entity.Route{}
	query := `
		SELECT id, tenant_id, kind, name, origin, destination, base_price, child_price, seats_available, created_at
		FROM routes
		WHERE tenant_id = ?
		ORDER BY id
	`
	if err := db.SelectContext(ctx, &routes, query, tenantID); err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *RouteRepositoryMySQL) DecrementSeats(ctx context.Context, tenantID, id string, n int) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE routes
		SET seats_available = seats_available - ?
		WHERE tenant_id = ? AND id = ? AND seats_available >= ?
	`
	result, err := db.ExecContext(ctx, query, n, tenantID, id, n)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *RouteRepositoryMySQL) IncrementSeats(ctx context.Context, tenantID, id string, n int) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE routes SET seats_available = seats_available + ? WHERE tenant_id = ? AND id = ?`,
		n, tenantID, id)
	return err
}
