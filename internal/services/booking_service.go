package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
	"dreamhouse/internal/utils"
)

// BookingRepository is the narrow storage surface the service depends on.
// The concrete implementation lives in internal/repositories; tests swap
// in fakes.
type BookingRepository interface {
	CreateBooking(b models.Booking) (int64, error)
	UpdateBooking(b models.Booking) error
	GetBooking(id int64) (models.Booking, error)
	GetAllBookings(page, limit int, startDate, endDate string) ([]models.Booking, int, error)
	GetChannels() ([]models.Channel, error)
	GetBookingsDate() ([]models.DateRange, error)
	GetBookingStats() (models.BookingStats, error)
	DeleteBooking(id int64) error
	GetClosestUpcomingBooking() (models.Booking, error)
	SetCalendarEventID(id int64, eventID string) error
}

// CalendarMirror pushes booking data to the external calendar. Failures
// are the caller's to log, never to propagate.
type CalendarMirror interface {
	MirrorCreate(ctx context.Context, b models.Booking) (eventID string, err error)
	MirrorUpdate(ctx context.Context, b models.Booking) error
}

// CreateBookingInput is the validated-at-the-boundary shape of a create
// submission. Monetary fields stay strings until the reconciler parses
// them; everything the form sends is here, nothing else.
type CreateBookingInput struct {
	GuestName   string
	GuestPhone  string
	GuestCount  int
	CheckIn     string
	CheckOut    string
	ChannelID   int64
	Advertising bool
	HalfDay     bool

	Currency   string
	Total      string
	Commission string
	DepositUSD string
	DepositARS string
}

// UpdateBookingInput carries a full-field update. Omitted optional amounts
// are treated as unset, not preserved.
type UpdateBookingInput struct {
	ID          int64
	GuestName   string
	GuestPhone  string
	GuestCount  int
	CheckIn     string
	CheckOut    string
	ChannelID   int64
	Status      string
	Advertising bool
	HalfDay     bool

	Currency   string
	Total      string
	Commission string
	DepositUSD string
	DepositARS string
	BalanceUSD string
	BalanceARS string
}

// BookingService owns the reservation lifecycle: validation, availability,
// pricing reconciliation, the durable write, and the best-effort calendar
// mirror that runs strictly after it.
type BookingService struct {
	Repo      BookingRepository
	Mirror    CalendarMirror
	RequestID string
}

// CreateBooking validates and stores a new reservation, then mirrors it to
// the calendar. The mirror step can fail freely; the booking is already
// durable and the operation still reports success.
func (s BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	stay, err := validateStay(in.GuestName, in.ChannelID, in.GuestCount, in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Booking{}, err
	}

	pricing, err := ReconcilePricing(PricingCreate, in.ChannelID, RawPricing{
		Currency:   in.Currency,
		Total:      in.Total,
		Commission: in.Commission,
		DepositUSD: in.DepositUSD,
		DepositARS: in.DepositARS,
	})
	if err != nil {
		return models.Booking{}, err
	}

	occupied, err := s.Repo.GetBookingsDate()
	if err != nil {
		return models.Booking{}, err
	}
	if HasConflict(stay, occupied) {
		return models.Booking{}, domain.ConflictError{Resource: "reserva", Msg: "las fechas seleccionadas no están disponibles"}
	}

	booking := models.Booking{
		GuestName:   utils.NormalizeSpace(in.GuestName),
		GuestPhone:  strings.TrimSpace(in.GuestPhone),
		GuestCount:  in.GuestCount,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Nights:      stay.Nights(),
		ChannelID:   in.ChannelID,
		Status:      models.StatusConfirmed, // creation policy: always confirmed
		Advertising: in.Advertising,
		HalfDay:     in.HalfDay,
		BookingDate: utils.NowUTC(),
		Pricing:     pricing,
	}

	id, err := s.Repo.CreateBooking(booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = id
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("id=%d nights=%d", id, booking.Nights))

	s.mirrorCreate(ctx, booking)
	return booking, nil
}

// UpdateBooking rewrites a reservation and patches its mirrored event.
func (s BookingService) UpdateBooking(ctx context.Context, in UpdateBookingInput) (models.Booking, error) {
	if in.ID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	existing, err := s.Repo.GetBooking(in.ID)
	if err != nil {
		return models.Booking{}, err
	}

	stay, err := validateStay(in.GuestName, in.ChannelID, in.GuestCount, in.CheckIn, in.CheckOut)
	if err != nil {
		return models.Booking{}, err
	}

	status, err := ParseStatus(in.Status)
	if err != nil {
		return models.Booking{}, err
	}
	if !CanTransition(existing.Status, status) {
		return models.Booking{}, domain.ValidationError{Field: "booking_state", Msg: "transición de estado inválida"}
	}

	pricing, err := ReconcilePricing(PricingUpdate, in.ChannelID, RawPricing{
		Currency:   in.Currency,
		Total:      in.Total,
		Commission: in.Commission,
		DepositUSD: in.DepositUSD,
		DepositARS: in.DepositARS,
		BalanceUSD: in.BalanceUSD,
		BalanceARS: in.BalanceARS,
	})
	if err != nil {
		return models.Booking{}, err
	}

	occupied, err := s.Repo.GetBookingsDate()
	if err != nil {
		return models.Booking{}, err
	}
	if HasConflict(stay, ExcludeRange(occupied, existing.Range())) {
		return models.Booking{}, domain.ConflictError{Resource: "reserva", Msg: "las fechas seleccionadas no están disponibles"}
	}

	booking := models.Booking{
		ID:          in.ID,
		GuestName:   utils.NormalizeSpace(in.GuestName),
		GuestPhone:  strings.TrimSpace(in.GuestPhone),
		GuestCount:  in.GuestCount,
		CheckIn:     stay.CheckIn,
		CheckOut:    stay.CheckOut,
		Nights:      stay.Nights(),
		ChannelID:   in.ChannelID,
		Status:      status,
		Advertising: in.Advertising,
		HalfDay:     in.HalfDay,
		BookingDate: existing.BookingDate,
		Pricing:     pricing,

		CalendarEventID: existing.CalendarEventID,
	}

	if err := s.Repo.UpdateBooking(booking); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "update", fmt.Sprintf("id=%d status=%s", in.ID, status))

	s.mirrorUpdate(ctx, booking)
	return booking, nil
}

// GetBooking returns one reservation.
func (s BookingService) GetBooking(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	return s.Repo.GetBooking(id)
}

// ListBookings returns a page of reservations with the grand total.
func (s BookingService) ListBookings(page, limit int, startDate, endDate string) ([]models.Booking, int, error) {
	return s.Repo.GetAllBookings(page, limit, startDate, endDate)
}

// DeleteBooking removes a reservation. Its calendar event is deliberately
// left behind; orphaned mirror events are accepted.
func (s BookingService) DeleteBooking(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	if err := s.Repo.DeleteBooking(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

// Channels lists booking sources.
func (s BookingService) Channels() ([]models.Channel, error) {
	return s.Repo.GetChannels()
}

// UnavailableDates returns the inclusive day ranges the pickers grey out.
// On the edit path the booking's own interval is removed first.
func (s BookingService) UnavailableDates(excludeBookingID int64) ([]models.DateRange, error) {
	occupied, err := s.Repo.GetBookingsDate()
	if err != nil {
		return nil, err
	}
	if excludeBookingID > 0 {
		self, err := s.Repo.GetBooking(excludeBookingID)
		if err != nil {
			return nil, err
		}
		occupied = ExcludeRange(occupied, self.Range())
	}
	return DisabledRanges(occupied), nil
}

// Stats returns the dashboard aggregates.
func (s BookingService) Stats() (models.BookingStats, error) {
	return s.Repo.GetBookingStats()
}

// ClosestUpcoming returns the next stay from today on.
func (s BookingService) ClosestUpcoming() (models.Booking, error) {
	return s.Repo.GetClosestUpcomingBooking()
}

// mirrorCreate runs the calendar insert after the durable write. Errors
// are logged and swallowed: the booking is the source of truth, the
// calendar a convenience mirror that may drift.
func (s BookingService) mirrorCreate(ctx context.Context, b models.Booking) {
	if s.Mirror == nil {
		return
	}
	eventID, err := s.Mirror.MirrorCreate(ctx, b)
	if err != nil {
		utils.LogEvent(s.RequestID, "calendar", "create_event", fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
		return
	}
	utils.LogEvent(s.RequestID, "calendar", "create_event", fmt.Sprintf("booking_id=%d event_id=%s", b.ID, eventID))
	if err := s.Repo.SetCalendarEventID(b.ID, eventID); err != nil {
		utils.LogEvent(s.RequestID, "calendar", "store_event_id", fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
	}
}

func (s BookingService) mirrorUpdate(ctx context.Context, b models.Booking) {
	if s.Mirror == nil {
		return
	}
	if err := s.Mirror.MirrorUpdate(ctx, b); err != nil {
		var syncErr domain.SyncError
		if errors.As(err, &syncErr) && syncErr.NotFound {
			utils.LogEvent(s.RequestID, "calendar", "patch_event", fmt.Sprintf("booking_id=%d evento no encontrado", b.ID))
			return
		}
		utils.LogEvent(s.RequestID, "calendar", "patch_event", fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
	}
}

// validateStay checks the always-required fields and returns the parsed
// stay interval.
func validateStay(guestName string, channelID int64, guestCount int, checkIn, checkOut string) (models.DateRange, error) {
	if strings.TrimSpace(guestName) == "" {
		return models.DateRange{}, domain.ValidationError{Field: "tenant_name", Msg: "el nombre es obligatorio"}
	}
	if channelID <= 0 {
		return models.DateRange{}, domain.ValidationError{Field: "channel_id", Msg: "el canal es obligatorio"}
	}
	if guestCount <= 0 {
		return models.DateRange{}, domain.ValidationError{Field: "tenant_quantity", Msg: "la cantidad de huéspedes debe ser mayor a cero"}
	}
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return models.DateRange{}, domain.ValidationError{Field: "check_in", Msg: "fecha de check-in inválida", Err: err}
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return models.DateRange{}, domain.ValidationError{Field: "check_out", Msg: "fecha de check-out inválida", Err: err}
	}
	if !out.After(in) {
		return models.DateRange{}, domain.ValidationError{Field: "check_out", Msg: "el check-out debe ser posterior al check-in"}
	}
	return models.DateRange{CheckIn: in, CheckOut: out}, nil
}
