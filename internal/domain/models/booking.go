package models

import (
	"time"

	"dreamhouse/internal/domain"
)

// Status values are stored exactly as the dashboard shows them.
const (
	StatusConfirmed = "Confirmada"
	StatusPending   = "Pendiente"
	StatusCancelled = "Cancelada"
)

// CommissionChannelID flags the one external channel that charges a USD
// commission per booking. Commission is meaningless everywhere else.
const CommissionChannelID = 1

// Channel is a booking source. Reference data, read-only.
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"channel_name"`
}

// DateRange is a half-open [CheckIn, CheckOut) stay interval. The checkout
// day itself is not an occupied night.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// Overlaps reports whether two half-open stay intervals share a night.
// Only the civil dates matter: the ranges may carry different locations
// (form input parses at UTC, the database scans in its own location), so
// both sides are normalized before comparing.
func (r DateRange) Overlaps(o DateRange) bool {
	rIn, rOut := civilDate(r.CheckIn), civilDate(r.CheckOut)
	oIn, oOut := civilDate(o.CheckIn), civilDate(o.CheckOut)
	return rIn.Before(oOut) && oIn.Before(rOut)
}

// Nights counts whole nights covered by the range.
func (r DateRange) Nights() int {
	return int(civilDate(r.CheckOut).Sub(civilDate(r.CheckIn)).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PricingSnapshot is the reconciled financial state of a booking. Exactly
// one of TotalUSD/TotalARS is set; the other stays nil for the life of the
// booking. Deposit plus balance is deliberately not reconciled against the
// total (payments may arrive over time).
type PricingSnapshot struct {
	Currency      domain.Currency `json:"currency"`
	TotalUSD      *float64        `json:"total_price_usd"`
	TotalARS      *float64        `json:"total_price_ars"`
	CommissionUSD *float64        `json:"channel_commission_usd"`
	DepositUSD    *float64        `json:"deposit_amount_usd"`
	DepositARS    *float64        `json:"deposit_payment_ars"`
	BalanceUSD    *float64        `json:"balance_amount_usd"`
	BalanceARS    *float64        `json:"balance_payment_ars"`
	// Exchange rates only apply to ARS payments and are filled in later by
	// the operator, never derived here.
	DepositExchangeRate *float64 `json:"deposit_exchange_rate"`
	BalanceExchangeRate *float64 `json:"balance_exchange_rate"`
}

// Total returns the authoritative amount in the booked currency.
func (p PricingSnapshot) Total() float64 {
	if p.Currency == domain.CurrencyARS {
		return deref(p.TotalARS)
	}
	return deref(p.TotalUSD)
}

// Paid returns the deposit received in the booked currency.
func (p PricingSnapshot) Paid() float64 {
	if p.Currency == domain.CurrencyARS {
		return deref(p.DepositARS) + deref(p.BalanceARS)
	}
	return deref(p.DepositUSD) + deref(p.BalanceUSD)
}

// Owed returns what the guest still has to pay in the booked currency.
func (p PricingSnapshot) Owed() float64 {
	owed := p.Total() - p.Paid()
	if owed < 0 {
		return 0
	}
	return owed
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Booking is the central entity: one guest stay at the property.
type Booking struct {
	ID          int64     `json:"id"`
	GuestName   string    `json:"guest_name"`
	GuestPhone  string    `json:"guest_phone,omitempty"`
	GuestCount  int       `json:"guest_count"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Nights      int       `json:"nights_stay"`
	ChannelID   int64     `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	Status      string    `json:"status"`
	Advertising bool      `json:"advertising_booking"`
	HalfDay     bool      `json:"half_day"`
	BookingDate time.Time `json:"booking_date"`
	Pricing     PricingSnapshot

	// CalendarEventID is a best-effort back-reference to the mirrored
	// calendar event. Empty for rows created before the column existed;
	// the mirror falls back to a title-suffix search then.
	CalendarEventID string `json:"calendar_event_id,omitempty"`
}

// Range returns the stay interval of the booking.
func (b Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// ValidStatus reports whether s is one of the three booking states.
func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// BookingStats summarizes the dashboard header numbers.
type BookingStats struct {
	TotalBookings     int     `json:"totalBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalNights       int     `json:"totalNights"`
}
