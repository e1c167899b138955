package model

import (
	"time"

	"github.com/shopspring/decimal"

	reservationModel "sportshub/internal/domains/reservation/model"
	"sportshub/internal/engine/settlement"
	"sportshub/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID          = "id"
	FieldPayableType = "payable_type"
	FieldPayableID   = "payable_id"
	FieldPlayerID    = "player_id"
	FieldClubID      = "club_id"
	FieldAmount      = "amount"
	FieldStatus      = "status"
	FieldPaidAt      = "paid_at"

	StatusPaid     = "paid"
	StatusRefunded = "refunded"
)

// Payment is written once per pending to paid transition. CommissionRate is
// the club's rate at that moment and never changes afterwards.
type Payment struct {
	ID              string          `db:"id"`
	PayableType     string          `db:"payable_type"`
	PayableID       string          `db:"payable_id"`
	ReservationKind string          `db:"reservation_kind"`
	PlayerID        string          `db:"player_id"`
	ClubID          string          `db:"club_id"`
	Amount          decimal.Decimal `db:"amount"`
	CommissionRate  decimal.Decimal `db:"commission_rate"`
	AdminFee        decimal.Decimal `db:"admin_fee"`
	ClubEarning     decimal.Decimal `db:"club_earning"`
	Method          string          `db:"method"`
	Status          string          `db:"status"`
	PaidAt          time.Time       `db:"paid_at"`
	model.Metadata
}

func New(id string, r reservationModel.Reservation, split settlement.Split, method, actor string, at time.Time) Payment {
	return Payment{
		ID:              id,
		PayableType:     r.Kind.PayableType(),
		PayableID:       r.ID,
		ReservationKind: string(r.Kind),
		PlayerID:        r.PlayerID,
		ClubID:          r.ClubID,
		Amount:          split.Amount,
		CommissionRate:  split.Rate,
		AdminFee:        split.AdminFee,
		ClubEarning:     split.ClubEarning,
		Method:          method,
		Status:          StatusPaid,
		PaidAt:          at,
		Metadata:        model.NewMetadata(actor, at),
	}
}

// Earning is one row of the per payable type settlement summary.
type Earning struct {
	PayableType  string          `db:"payable_type"`
	Payments     int             `db:"payments"`
	Gross        decimal.Decimal `db:"gross"`
	AdminFees    decimal.Decimal `db:"admin_fees"`
	ClubEarnings decimal.Decimal `db:"club_earnings"`
}
