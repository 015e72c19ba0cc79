package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
	"dreamhouse/internal/utils"
)

// Check-in opens at noon; checkout closes at 10, or 18 when the guest paid
// the half-day extension.
const (
	checkInHour         = 12
	checkOutHour        = 10
	halfDayCheckOutHour = 18
)

// Mirror keeps one calendar event per booking approximately in sync with
// the reservation data. Every method is best-effort: callers log the
// returned SyncError and move on, the booking row stays authoritative.
type Mirror struct {
	Provider Provider
	Location *time.Location
}

func NewMirror(p Provider) Mirror {
	return Mirror{Provider: p, Location: utils.PropertyLocation()}
}

// MirrorCreate inserts the event for a freshly created booking and returns
// the provider's event id so the caller can store the back-reference.
func (m Mirror) MirrorCreate(ctx context.Context, b models.Booking) (string, error) {
	ref, err := m.Provider.InsertEvent(ctx, m.eventFor(b))
	if err != nil {
		return "", domain.SyncError{Op: "insert", Err: err}
	}
	return ref.ID, nil
}

// MirrorUpdate patches the booking's event with the new values. The stored
// event id is the preferred lookup; bookings that predate the
// back-reference column fall back to searching for a title ending in
// "-{id}", which keeps working when the guest name changed.
func (m Mirror) MirrorUpdate(ctx context.Context, b models.Booking) error {
	eventID := strings.TrimSpace(b.CalendarEventID)
	if eventID == "" {
		found, err := m.findByIDSuffix(ctx, b.ID)
		if err != nil {
			return err
		}
		eventID = found
	}

	if _, err := m.Provider.PatchEvent(ctx, eventID, m.eventFor(b)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.SyncError{Op: "patch", NotFound: true, Err: err}
		}
		return domain.SyncError{Op: "patch", Err: err}
	}
	return nil
}

func (m Mirror) findByIDSuffix(ctx context.Context, bookingID int64) (string, error) {
	events, err := m.Provider.ListEvents(ctx, strconv.FormatInt(bookingID, 10))
	if err != nil {
		return "", domain.SyncError{Op: "list", Err: err}
	}
	suffix := fmt.Sprintf("-%d", bookingID)
	for _, ev := range events {
		if ev.ID != "" && strings.HasSuffix(ev.Summary, suffix) {
			return ev.ID, nil
		}
	}
	return "", domain.SyncError{Op: "list", NotFound: true}
}

func (m Mirror) eventFor(b models.Booking) Event {
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}

	outHour := checkOutHour
	if b.HalfDay {
		outHour = halfDayCheckOutHour
	}
	start := atHour(b.CheckIn, checkInHour, loc)
	end := atHour(b.CheckOut, outHour, loc)

	return Event{
		Summary:     fmt.Sprintf("%s-%d", b.GuestName, b.ID),
		Description: describeBooking(b),
		Start:       start,
		End:         end,
		TimeZone:    utils.PropertyTimezone,
	}
}

// describeBooking renders the amounts block the cleaning staff reads on
// their phones: total, paid so far, and what the guest still owes, in the
// booked currency.
func describeBooking(b models.Booking) string {
	cur := string(b.Pricing.Currency)
	desc := fmt.Sprintf("<b>TOTAL</b>: %s %s\n<b>PAGÓ</b>: %s %s\n<b>FALTA PAGAR</b>: %s %s",
		utils.FormatAmount(b.Pricing.Total()), cur,
		utils.FormatAmount(b.Pricing.Paid()), cur,
		utils.FormatAmount(b.Pricing.Owed()), cur,
	)
	if b.HalfDay {
		desc += "\n<b>OBS</b>: Pagó medio día"
	}
	return desc
}

func atHour(day time.Time, hour int, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}
