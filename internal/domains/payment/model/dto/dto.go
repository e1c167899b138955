package dto

import (
	"github.com/shopspring/decimal"

	"sportshub/internal/domains/payment/model"
	reservationModel "sportshub/internal/domains/reservation/model"
	reservationDto "sportshub/internal/domains/reservation/model/dto"
	"sportshub/shared"
	"sportshub/shared/constant"
	gDto "sportshub/shared/dto"
	"sportshub/shared/timezone"
)

type PayRequest struct {
	ReservationID string `json:"reservation_id"   validate:"required,uuid"`
	Method        string `json:"method,omitempty" validate:"omitempty,oneof=card cash transfer ewallet"`
}

type PaymentResponse struct {
	ID              string `json:"id"`
	PayableType     string `json:"payable_type"`
	PayableID       string `json:"payable_id"`
	ReservationKind string `json:"reservation_kind"`
	PlayerID        string `json:"player_id"`
	ClubID          string `json:"club_id"`
	Amount          string `json:"amount"`
	CommissionRate  string `json:"commission_rate"`
	AdminFee        string `json:"admin_fee"`
	ClubEarning     string `json:"club_earning"`
	Method          string `json:"method"`
	Status          string `json:"status"`
	PaidAt          string `json:"paid_at"`
	gDto.Metadata
}

func (p *PaymentResponse) FromModel(m model.Payment) {
	p.ID = m.ID
	p.PayableType = m.PayableType
	p.PayableID = m.PayableID
	p.ReservationKind = m.ReservationKind
	p.PlayerID = m.PlayerID
	p.ClubID = m.ClubID
	p.Amount = m.Amount.StringFixed(2)
	p.CommissionRate = m.CommissionRate.String()
	p.AdminFee = m.AdminFee.StringFixed(2)
	p.ClubEarning = m.ClubEarning.StringFixed(2)
	p.Method = m.Method
	p.Status = m.Status
	p.PaidAt = timezone.Format(m.PaidAt, constant.DateFormat)
	p.Metadata.FromModel(m.Metadata)
}

type PayResponse struct {
	Reservation reservationDto.ReservationResponse `json:"reservation"`
	Payment     PaymentResponse                    `json:"payment"`
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

type EarningLine struct {
	PayableType  string `json:"payable_type"`
	Payments     int    `json:"payments"`
	Gross        string `json:"gross"`
	AdminFees    string `json:"admin_fees"`
	ClubEarnings string `json:"club_earnings"`
}

type EarningsResponse struct {
	ClubID       string        `json:"club_id"`
	Payments     int           `json:"payments"`
	Gross        string        `json:"gross"`
	AdminFees    string        `json:"admin_fees"`
	ClubEarnings string        `json:"club_earnings"`
	ByType       []EarningLine `json:"by_type"`
}

func (e *EarningsResponse) FromModels(clubID string, rows []model.Earning) {
	gross, fees, earnings := decimal.Zero, decimal.Zero, decimal.Zero

	e.ClubID = clubID
	e.Payments = 0
	e.ByType = make([]EarningLine, len(rows))

	for i, row := range rows {
		e.Payments += row.Payments
		gross = gross.Add(row.Gross)
		fees = fees.Add(row.AdminFees)
		earnings = earnings.Add(row.ClubEarnings)

		e.ByType[i] = EarningLine{
			PayableType:  row.PayableType,
			Payments:     row.Payments,
			Gross:        row.Gross.StringFixed(2),
			AdminFees:    row.AdminFees.StringFixed(2),
			ClubEarnings: row.ClubEarnings.StringFixed(2),
		}
	}

	e.Gross = gross.StringFixed(2)
	e.AdminFees = fees.StringFixed(2)
	e.ClubEarnings = earnings.StringFixed(2)
}

// Event is published on the reservation topic when a reservation is paid.
type Event struct {
	reservationDto.Event
	PaymentID      string `json:"payment_id"`
	Amount         string `json:"amount"`
	CommissionRate string `json:"commission_rate"`
	AdminFee       string `json:"admin_fee"`
	ClubEarning    string `json:"club_earning"`
}

func NewEvent(r reservationModel.Reservation, p model.Payment, actor string) Event {
	return Event{
		Event:          reservationDto.NewEvent(r, actor),
		PaymentID:      p.ID,
		Amount:         p.Amount.StringFixed(2),
		CommissionRate: p.CommissionRate.String(),
		AdminFee:       p.AdminFee.StringFixed(2),
		ClubEarning:    p.ClubEarning.StringFixed(2),
	}
}
