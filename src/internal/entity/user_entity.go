package entity

import "time"

type UserRole string

const (
	RoleCustomer          UserRole = "CUSTOMER"
	RoleCorporateCustomer UserRole = "CORPORATE_CUSTOMER"
	RoleDriver            UserRole = "DRIVER"
	RoleOperator          UserRole = "OPERATOR"
	RoleAdministrator     UserRole = "ADMINISTRATOR"
)

type User struct {
	UserID       string   `json:"user_id" db:"user_id"`
	TenantID     string   `json:"tenant_id" db:"tenant_id"`
	Role         UserRole `json:"role" db:"role"`
	FullName     string   `json:"full_name" db:"full_name"`
	Email        string   `json:"email" db:"email"`
	MobileNumber string   `json:"mobile_number" db:"mobile_number"`
	// MarkupPercent is only set for corporate customers; applied on top of the
	// route base price and clamped to [0,100] when quoting.
	MarkupPercent *float64   `json:"markup_percent,omitempty" db:"markup_percent"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
