package entity

import "time"

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFlat    DiscountType = "FLAT"
)

type Coupon struct {
	Code          string       `json:"code" db:"code"`
	TenantID      string       `json:"tenant_id" db:"tenant_id"`
	Name          string       `json:"name" db:"name"`
	DiscountType  DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue float64      `json:"discount_value" db:"discount_value"`
	MaxDiscount   *float64     `json:"max_discount,omitempty" db:"max_discount"`
	Active        bool         `json:"active" db:"active"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

// DiscountOn returns the discount amount for a given total, respecting
// MaxDiscount and never exceeding the total itself.
func (c *Coupon) DiscountOn(total float64) float64 {
	if !c.Active || total <= 0 {
		return 0
	}
	var d float64
	switch c.DiscountType {
	case DiscountPercent:
		d = total * c.DiscountValue / 100
	case DiscountFlat:
		d = c.DiscountValue
	}
	if c.MaxDiscount != nil && d > *c.MaxDiscount {
		d = *c.MaxDiscount
	}
	if d > total {
		d = total
	}
	if d < 0 {
		d = 0
	}
	return d
}
