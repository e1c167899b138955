// Package model maps the catalog tables. They are written by the club CRUD
// surface; this service only reads them and locks rows it mutates.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"sportshub/internal/engine/timewindow"
	"sportshub/shared/model"
)

const (
	EntityClub         = "club"
	EntityPlayer       = "player"
	EntityFacility     = "facility"
	EntityCoach        = "coach"
	EntityWindow       = "availability_window"
	EntityClassSession = "class_session"
	EntityAccessory    = "accessory"

	TableClubs         = "clubs"
	TablePlayers       = "players"
	TableFacilities    = "facilities"
	TableCoaches       = "coaches"
	TableWindows       = "coach_availability_windows"
	TableClassSessions = "class_sessions"
	TableAccessories   = "accessories"

	FieldID          = "id"
	FieldCoachID     = "coach_id"
	FieldBookedCount = "booked_count"
	FieldStock       = "stock"
)

type Club struct {
	ID             string              `db:"id"`
	Name           string              `db:"name"`
	Approved       bool                `db:"approved"`
	CommissionRate decimal.NullDecimal `db:"commission_rate"`
	model.Metadata
}

// Rate returns the recorded commission rate, or nil when the club has none.
func (c Club) Rate() *decimal.Decimal {
	if !c.CommissionRate.Valid {
		return nil
	}

	rate := c.CommissionRate.Decimal

	return &rate
}

type Player struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsMember bool   `db:"is_member"`
	model.Metadata
}

type Facility struct {
	ID          string          `db:"id"`
	ClubID      string          `db:"club_id"`
	Name        string          `db:"name"`
	Sport       string          `db:"sport"`
	HourlyPrice decimal.Decimal `db:"hourly_price"`
	model.Metadata
}

type Coach struct {
	ID              string          `db:"id"`
	ClubID          string          `db:"club_id"`
	Name            string          `db:"name"`
	Sport           string          `db:"sport"`
	PersonalEnabled bool            `db:"personal_enabled"`
	PersonalRate    decimal.Decimal `db:"personal_rate_per_hour"`
	ClassEnabled    bool            `db:"class_enabled"`
	ClassPrice      decimal.Decimal `db:"class_price"`
	Active          bool            `db:"active"`
	model.Metadata
}

type AvailabilityWindow struct {
	ID      string `db:"id"`
	CoachID string `db:"coach_id"`
	timewindow.WeeklyWindow
}

// Windows strips the row identity off a coach's windows.
func Windows(rows []AvailabilityWindow) []timewindow.WeeklyWindow {
	out := make([]timewindow.WeeklyWindow, len(rows))
	for i, row := range rows {
		out[i] = row.WeeklyWindow
	}

	return out
}

type ClassSession struct {
	ID          string    `db:"id"`
	CoachID     string    `db:"coach_id"`
	StartAt     time.Time `db:"start_at"`
	EndAt       time.Time `db:"end_at"`
	MaxCapacity int       `db:"max_capacity"`
	BookedCount int       `db:"booked_count"`
	Active      bool      `db:"active"`
	model.Metadata
}

type Accessory struct {
	ID             string          `db:"id"`
	ClubID         string          `db:"club_id"`
	Name           string          `db:"name"`
	Sport          string          `db:"sport"`
	RentEnabled    bool            `db:"rent_enabled"`
	RentHourlyRate decimal.Decimal `db:"rent_price_per_hour"`
	BuyEnabled     bool            `db:"buy_enabled"`
	BuyPrice       decimal.Decimal `db:"buy_price"`
	Stock          int             `db:"stock"`
	Active         bool            `db:"active"`
	model.Metadata
}
