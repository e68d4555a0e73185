package model

import "time"

// PromoCode represents a discount code as stored in the `promo_codes`
// table. DiscountPct and MaxDiscountCents bound the discount applied
// to a slot price at booking time.
type PromoCode struct {
	ID               uint64    // promo_codes.id
	Code             string    // promo_codes.code (unique, upper-cased)
	DiscountPct      uint8     // promo_codes.discount_pct (1..100)
	MaxDiscountCents uint32    // promo_codes.max_discount_cents (0 = uncapped)
	ValidFrom        time.Time // promo_codes.valid_from
	ValidUntil       time.Time // promo_codes.valid_until
	MaxUses          uint32    // promo_codes.max_uses (0 = unlimited)
	IsActive         bool      // promo_codes.is_active
	CreatedAt        time.Time // promo_codes.created_at
	UpdatedAt        time.Time // promo_codes.updated_at
}

// PromoUsage is the aggregate returned by the usage report: how many
// bookings used the code and how much discount it granted in total.
type PromoUsage struct {
	PromoCodeID        uint64
	Uses               uint32
	DiscountTotalCents uint64
}
