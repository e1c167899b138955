// Package settlement splits a paid amount between the platform and the club.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sportshub/shared/failure"
	"sportshub/shared/money"
)

type Split struct {
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"commission_rate"`
	AdminFee    decimal.Decimal `json:"admin_fee"`
	ClubEarning decimal.Decimal `json:"club_earning"`
}

// Settle computes adminFee = round2(amount × rate) and gives the club the rest,
// so AdminFee + ClubEarning always equals Amount.
func Settle(amount, rate decimal.Decimal) (Split, error) {
	if !amount.IsPositive() {
		return Split{}, failure.Validation(failure.ReasonInvalidAmount, "invalid amount")
	}

	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Split{}, failure.InternalError(fmt.Errorf("commission rate %s out of range", rate))
	}

	fee := money.Round2(amount.Mul(rate))

	return Split{
		Amount:      amount,
		Rate:        rate,
		AdminFee:    fee,
		ClubEarning: money.Round2(amount.Sub(fee)),
	}, nil
}

// Policy resolves the commission rate snapshotted on a payment.
type Policy struct {
	Default decimal.Decimal
	Allowed []decimal.Decimal
}

// NewPolicy parses the configured default and allowed rates.
func NewPolicy(defaultRate string, allowed []string) (Policy, error) {
	def, err := money.Parse(defaultRate)
	if err != nil {
		return Policy{}, fmt.Errorf("default commission rate: %w", err)
	}

	rates, err := money.ParseAll(allowed)
	if err != nil {
		return Policy{}, fmt.Errorf("allowed commission rates: %w", err)
	}

	return Policy{Default: def, Allowed: rates}, nil
}

// Resolve returns the club's rate, or the default when the club has none
// recorded. A rate outside the allowed set is corrupt catalog data.
func (p Policy) Resolve(clubRate *decimal.Decimal) (decimal.Decimal, error) {
	if clubRate == nil || clubRate.IsZero() {
		return p.Default, nil
	}

	if len(p.Allowed) == 0 {
		return *clubRate, nil
	}

	for _, allowed := range p.Allowed {
		if allowed.Equal(*clubRate) {
			return *clubRate, nil
		}
	}

	return decimal.Zero, failure.InternalError(fmt.Errorf("commission rate %s is not an allowed rate", clubRate))
}
