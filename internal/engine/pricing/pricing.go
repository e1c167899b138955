// Package pricing computes what a player owes for each reservation variant.
// Base and discount keep full precision; only Total is rounded.
package pricing

import (
	"github.com/shopspring/decimal"

	"sportshub/shared/failure"
	"sportshub/shared/money"
)

type Pricing struct {
	Base              decimal.Decimal `json:"base"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	MembershipApplied bool            `json:"membership_applied"`
}

type Calculator struct {
	discountRate decimal.Decimal
}

// NewCalculator takes the membership discount rate applied to facility bookings.
func NewCalculator(discountRate decimal.Decimal) *Calculator {
	return &Calculator{discountRate: discountRate}
}

func nonNegative(price decimal.Decimal) error {
	if price.IsNegative() {
		return failure.Validation(failure.ReasonInvalidAmount, "price must not be negative")
	}

	return nil
}

func positive(qty int) error {
	if qty <= 0 {
		return failure.Validation(failure.ReasonInvalidQuantity, "quantity must be at least 1")
	}

	return nil
}

func positiveHours(hours decimal.Decimal) error {
	if !hours.IsPositive() {
		return failure.Validation(failure.ReasonInvalidDuration, "duration must be greater than 0")
	}

	return nil
}

func flat(base decimal.Decimal) Pricing {
	return Pricing{Base: base, Discount: decimal.Zero, Total: money.Round2(base)}
}

// Facility prices hourly × hours with the membership discount for members.
func (c *Calculator) Facility(hourly, hours decimal.Decimal, member bool) (Pricing, error) {
	if err := nonNegative(hourly); err != nil {
		return Pricing{}, err
	}

	if err := positiveHours(hours); err != nil {
		return Pricing{}, err
	}

	base := hourly.Mul(hours)
	discount := decimal.Zero

	if member {
		discount = base.Mul(c.discountRate)
	}

	return Pricing{
		Base:              base,
		Discount:          discount,
		Total:             money.Round2(base.Sub(discount)),
		MembershipApplied: member,
	}, nil
}

// Personal prices a one-to-one coach session.
func (c *Calculator) Personal(rate, hours decimal.Decimal) (Pricing, error) {
	if err := nonNegative(rate); err != nil {
		return Pricing{}, err
	}

	if err := positiveHours(hours); err != nil {
		return Pricing{}, err
	}

	return flat(rate.Mul(hours)), nil
}

// Class prices participants seats of a class session.
func (c *Calculator) Class(price decimal.Decimal, participants int) (Pricing, error) {
	if err := nonNegative(price); err != nil {
		return Pricing{}, err
	}

	if err := positive(participants); err != nil {
		return Pricing{}, err
	}

	return flat(price.Mul(decimal.NewFromInt(int64(participants)))), nil
}

// AccessoryBuy prices a purchase of qty units.
func (c *Calculator) AccessoryBuy(unit decimal.Decimal, qty int) (Pricing, error) {
	if err := nonNegative(unit); err != nil {
		return Pricing{}, err
	}

	if err := positive(qty); err != nil {
		return Pricing{}, err
	}

	return flat(unit.Mul(decimal.NewFromInt(int64(qty)))), nil
}

// AccessoryRent prices qty units for hours at an hourly unit rate.
func (c *Calculator) AccessoryRent(unit, hours decimal.Decimal, qty int) (Pricing, error) {
	if err := nonNegative(unit); err != nil {
		return Pricing{}, err
	}

	if err := positiveHours(hours); err != nil {
		return Pricing{}, err
	}

	if err := positive(qty); err != nil {
		return Pricing{}, err
	}

	return flat(unit.Mul(hours).Mul(decimal.NewFromInt(int64(qty)))), nil
}
