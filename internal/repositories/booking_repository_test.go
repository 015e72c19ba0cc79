package repositories

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id_reserva", "fecha_reserva_fk", "fecha_checkin_fk", "fecha_checkout_fk",
		"id_canal_fk", "nombre_canal", "cant_huespedes", "noches_estadia",
		"estado_reserva", "reserva_por_adv", "medio_dia",
		"nombre_huesped_ref", "tel_huesped",
		"precio_total_cotizado_usd", "precio_total_cotizado_ars",
		"comision_canal_usd",
		"monto_anticipo_usd", "pago_anticipo_ars",
		"monto_saldo_usd", "pago_saldo_ars",
		"tipo_cambio_anticipo", "tipo_cambio_saldo",
	})
}

func sampleBooking() models.Booking {
	in := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	total := 1500.0
	deposit := 500.0
	return models.Booking{
		GuestName:   "Juan Pérez",
		GuestCount:  2,
		CheckIn:     in,
		CheckOut:    out,
		Nights:      5,
		ChannelID:   2,
		Status:      models.StatusConfirmed,
		BookingDate: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Pricing: models.PricingSnapshot{
			Currency:   domain.CurrencyUSD,
			TotalUSD:   &total,
			DepositUSD: &deposit,
		},
	}
}

func TestCreateBooking_InsertsAndReturnsID(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}
	b := sampleBooking()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fact_reservas")).
		WithArgs(
			b.BookingDate, b.CheckIn, b.CheckOut,
			b.ChannelID, b.GuestCount, b.Nights,
			b.Status, b.Advertising, b.HalfDay,
			b.GuestName, nil,
			1500.0, nil,
			nil,
			500.0, nil,
			nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.CreateBooking(b)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetBooking_ScansRowAndInfersCurrency(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	rows := bookingRows().AddRow(
		7, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		2, "Directo", 2, 5,
		"Confirmada", false, false,
		"Juan Pérez", "",
		nil, 300000.0,
		nil,
		nil, 100000.0,
		nil, nil,
		1000.0, nil,
	)
	mock.ExpectQuery("SELECT(?s:.+)FROM fact_reservas fr(?s:.+)WHERE fr.id_reserva").
		WithArgs(int64(7)).
		WillReturnRows(rows)
	// schema probe for the calendar back-reference column
	mock.ExpectQuery("information_schema.columns").
		WithArgs("fact_reservas", "id_evento_calendario").
		WillReturnError(sql.ErrNoRows)

	b, err := repo.GetBooking(7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID != 7 || b.ChannelName != "Directo" {
		t.Fatalf("row scanned incorrectly: %+v", b)
	}
	if b.Pricing.Currency != domain.CurrencyARS {
		t.Fatalf("ARS total set, expected ARS currency, got %s", b.Pricing.Currency)
	}
	if b.Pricing.TotalARS == nil || *b.Pricing.TotalARS != 300000.0 {
		t.Fatalf("total ARS lost in scan: %+v", b.Pricing)
	}
	if b.Pricing.TotalUSD != nil {
		t.Fatalf("USD total should stay nil for an ARS booking")
	}
	if b.CalendarEventID != "" {
		t.Fatalf("no calendar column, event id should be empty")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectQuery("SELECT(?s:.+)WHERE fr.id_reserva").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBooking(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetBookingsDate_ReturnsRanges(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fecha_checkin_fk, fecha_checkout_fk FROM fact_reservas")).
		WillReturnRows(sqlmock.NewRows([]string{"fecha_checkin_fk", "fecha_checkout_fk"}).
			AddRow(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)))

	ranges, err := repo.GetBookingsDate()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
}

func TestGetBookingStats_HandlesEmptyTable(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	// SUM over zero rows comes back NULL
	mock.ExpectQuery("SELECT(?s:.+)FROM fact_reservas").
		WillReturnRows(sqlmock.NewRows([]string{"c", "conf", "rev", "nights"}).
			AddRow(0, nil, nil, nil))

	stats, err := repo.GetBookingStats()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalBookings != 0 || stats.TotalRevenue != 0 || stats.TotalNights != 0 {
		t.Fatalf("NULL sums should coerce to zero: %+v", stats)
	}
}

func TestDeleteBooking_NotFoundWhenNoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fact_reservas WHERE id_reserva = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBooking(5)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteBooking_RemovesRow(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fact_reservas WHERE id_reserva = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteBooking(5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetCalendarEventID_SkipsWhenColumnMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectQuery("information_schema.columns").
		WithArgs("fact_reservas", "id_evento_calendario").
		WillReturnError(sql.ErrNoRows)

	if err := repo.SetCalendarEventID(3, "evt-1"); err != nil {
		t.Fatalf("missing column should be a no-op, got %v", err)
	}
}

func TestSetCalendarEventID_StoresWhenColumnExists(t *testing.T) {
	db, mock := newMock(t)
	repo := BookingRepo{DB: db}

	mock.ExpectQuery("information_schema.columns").
		WithArgs("fact_reservas", "id_evento_calendario").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id_evento_calendario"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE fact_reservas SET id_evento_calendario = ?")).
		WithArgs("evt-1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetCalendarEventID(3, "evt-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
