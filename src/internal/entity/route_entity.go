package entity

import "time"

// Route is a bookable service definition. SeatsAvailable is only set for
// scheduled-seat routes and is decremented at booking time, never below zero.
type Route struct {
	ID             string           `json:"id" db:"id"`
	TenantID       string           `json:"tenant_id" db:"tenant_id"`
	Kind           ServiceKind      `json:"kind" db:"kind"`
	Name           string           `json:"name" db:"name"`
	Origin         string           `json:"origin" db:"origin"`
	Destination    string           `json:"destination" db:"destination"`
	BasePrice      float64          `json:"base_price" db:"base_price"`
	ChildPrice     *float64         `json:"child_price,omitempty" db:"child_price"`
	SeatsAvailable *int             `json:"seats_available,omitempty" db:"seats_available"`
	Surcharges     []RouteSurcharge `json:"surcharges,omitempty"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// RouteSurcharge is a per-tenant flat addition on top of a route's base price,
// used by operators that resell another tenant's route.
type RouteSurcharge struct {
	RouteID  string  `json:"route_id" db:"route_id"`
	TenantID string  `json:"tenant_id" db:"tenant_id"`
	Amount   float64 `json:"amount" db:"amount"`
}

// SurchargeFor returns the flat surcharge configured for a tenant, if any.
func (r *Route) SurchargeFor(tenantID string) (float64, bool) {
	for _, s := range r.Surcharges {
		if s.TenantID == tenantID {
			return s.Amount, true
		}
	}
	return 0, false
}
