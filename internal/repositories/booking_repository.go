package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "dreamhouse/internal/config"
	intdb "dreamhouse/internal/db"
	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
)

// BookingRepo persists bookings in fact_reservas joined to dim_canales.
// The schema keeps the original warehouse-style naming of the property
// database; everything else in the codebase speaks the domain model.
type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	fr.id_reserva,
	fr.fecha_reserva_fk,
	fr.fecha_checkin_fk,
	fr.fecha_checkout_fk,
	fr.id_canal_fk,
	dm.nombre_canal,
	fr.cant_huespedes,
	fr.noches_estadia,
	fr.estado_reserva,
	fr.reserva_por_adv,
	fr.medio_dia,
	COALESCE(fr.nombre_huesped_ref, ''),
	COALESCE(fr.tel_huesped, ''),
	fr.precio_total_cotizado_usd,
	fr.precio_total_cotizado_ars,
	fr.comision_canal_usd,
	fr.monto_anticipo_usd,
	fr.pago_anticipo_ars,
	fr.monto_saldo_usd,
	fr.pago_saldo_ars,
	fr.tipo_cambio_anticipo,
	fr.tipo_cambio_saldo`

const bookingFrom = `
	FROM fact_reservas fr
	INNER JOIN dim_canales dm ON dm.id_canal = fr.id_canal_fk`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b                  models.Booking
		totalUSD, totalARS sql.NullFloat64
		commission         sql.NullFloat64
		depUSD, depARS     sql.NullFloat64
		balUSD, balARS     sql.NullFloat64
		rateDep, rateBal   sql.NullFloat64
	)
	if err := row.Scan(
		&b.ID,
		&b.BookingDate,
		&b.CheckIn,
		&b.CheckOut,
		&b.ChannelID,
		&b.ChannelName,
		&b.GuestCount,
		&b.Nights,
		&b.Status,
		&b.Advertising,
		&b.HalfDay,
		&b.GuestName,
		&b.GuestPhone,
		&totalUSD,
		&totalARS,
		&commission,
		&depUSD,
		&depARS,
		&balUSD,
		&balARS,
		&rateDep,
		&rateBal,
	); err != nil {
		return models.Booking{}, err
	}

	b.Pricing = models.PricingSnapshot{
		Currency:            domain.CurrencyUSD,
		TotalUSD:            floatPtr(totalUSD),
		TotalARS:            floatPtr(totalARS),
		CommissionUSD:       floatPtr(commission),
		DepositUSD:          floatPtr(depUSD),
		DepositARS:          floatPtr(depARS),
		BalanceUSD:          floatPtr(balUSD),
		BalanceARS:          floatPtr(balARS),
		DepositExchangeRate: floatPtr(rateDep),
		BalanceExchangeRate: floatPtr(rateBal),
	}
	if b.Pricing.TotalARS != nil {
		b.Pricing.Currency = domain.CurrencyARS
	}
	return b, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// CreateBooking inserts a reservation and returns its generated id.
func (r BookingRepo) CreateBooking(b models.Booking) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "base de datos no disponible"}
	}

	res, err := db.Exec(`
		INSERT INTO fact_reservas (
			fecha_reserva_fk, fecha_checkin_fk, fecha_checkout_fk,
			id_canal_fk, cant_huespedes, noches_estadia,
			estado_reserva, reserva_por_adv, medio_dia,
			nombre_huesped_ref, tel_huesped,
			precio_total_cotizado_usd, precio_total_cotizado_ars,
			comision_canal_usd,
			monto_anticipo_usd, pago_anticipo_ars,
			monto_saldo_usd, pago_saldo_ars
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BookingDate,
		b.CheckIn,
		b.CheckOut,
		b.ChannelID,
		b.GuestCount,
		b.Nights,
		b.Status,
		b.Advertising,
		b.HalfDay,
		strings.TrimSpace(b.GuestName),
		intdb.NullIfEmpty(strings.TrimSpace(b.GuestPhone)),
		intdb.NullFloat(b.Pricing.TotalUSD),
		intdb.NullFloat(b.Pricing.TotalARS),
		intdb.NullFloat(b.Pricing.CommissionUSD),
		intdb.NullFloat(b.Pricing.DepositUSD),
		intdb.NullFloat(b.Pricing.DepositARS),
		intdb.NullFloat(b.Pricing.BalanceUSD),
		intdb.NullFloat(b.Pricing.BalanceARS),
	)
	if err != nil {
		return 0, domain.InternalError{Msg: "no se pudo crear la reserva", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

// UpdateBooking rewrites every operator-editable field of the row. This is
// a full-field update: an omitted optional amount arrives as nil and is
// stored as NULL, not preserved.
func (r BookingRepo) UpdateBooking(b models.Booking) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "base de datos no disponible"}
	}

	res, err := db.Exec(`
		UPDATE fact_reservas SET
			fecha_checkin_fk = ?, fecha_checkout_fk = ?,
			id_canal_fk = ?, cant_huespedes = ?, noches_estadia = ?,
			estado_reserva = ?, reserva_por_adv = ?, medio_dia = ?,
			nombre_huesped_ref = ?, tel_huesped = ?,
			precio_total_cotizado_usd = ?, precio_total_cotizado_ars = ?,
			comision_canal_usd = ?,
			monto_anticipo_usd = ?, pago_anticipo_ars = ?,
			monto_saldo_usd = ?, pago_saldo_ars = ?
		WHERE id_reserva = ?`,
		b.CheckIn,
		b.CheckOut,
		b.ChannelID,
		b.GuestCount,
		b.Nights,
		b.Status,
		b.Advertising,
		b.HalfDay,
		strings.TrimSpace(b.GuestName),
		intdb.NullIfEmpty(strings.TrimSpace(b.GuestPhone)),
		intdb.NullFloat(b.Pricing.TotalUSD),
		intdb.NullFloat(b.Pricing.TotalARS),
		intdb.NullFloat(b.Pricing.CommissionUSD),
		intdb.NullFloat(b.Pricing.DepositUSD),
		intdb.NullFloat(b.Pricing.DepositARS),
		intdb.NullFloat(b.Pricing.BalanceUSD),
		intdb.NullFloat(b.Pricing.BalanceARS),
		b.ID,
	)
	if err != nil {
		return domain.InternalError{Msg: "no se pudo actualizar la reserva", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL also reports 0 when nothing changed, so double-check.
		if _, err := r.GetBooking(b.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetBooking fetches one reservation with its channel name.
func (r BookingRepo) GetBooking(id int64) (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "base de datos no disponible"}
	}

	row := db.QueryRow(`SELECT`+bookingColumns+bookingFrom+`
		WHERE fr.id_reserva = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "reserva"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if intdb.HasColumn(db, "fact_reservas", "id_evento_calendario") {
		var eventID sql.NullString
		_ = db.QueryRow(`SELECT id_evento_calendario FROM fact_reservas WHERE id_reserva = ?`, id).Scan(&eventID)
		if eventID.Valid {
			b.CalendarEventID = eventID.String
		}
	}
	return b, nil
}

// GetAllBookings returns one page ordered by check-in descending, with an
// optional check-in date window.
func (r BookingRepo) GetAllBookings(page, limit int, startDate, endDate string) ([]models.Booking, int, error) {
	db := r.db()
	if db == nil {
		return nil, 0, domain.InternalError{Msg: "base de datos no disponible"}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := ""
	args := []any{}
	if startDate != "" && endDate != "" {
		where = " WHERE fr.fecha_checkin_fk >= ? AND fr.fecha_checkin_fk <= ?"
		args = append(args, startDate, endDate)
	} else if startDate != "" {
		where = " WHERE fr.fecha_checkin_fk >= ?"
		args = append(args, startDate)
	} else if endDate != "" {
		where = " WHERE fr.fecha_checkin_fk <= ?"
		args = append(args, endDate)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fact_reservas fr`+where, args...).Scan(&total); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	offset := (page - 1) * limit
	rows, err := db.Query(`SELECT`+bookingColumns+bookingFrom+where+`
		ORDER BY fr.fecha_checkin_fk DESC
		LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	return bookings, total, nil
}

// GetChannels lists booking sources.
func (r BookingRepo) GetChannels() ([]models.Channel, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "base de datos no disponible"}
	}
	rows, err := db.Query(`SELECT id_canal, nombre_canal FROM dim_canales ORDER BY id_canal`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.Name); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// GetBookingsDate returns every reserved interval, used to build the
// disabled-range set for the pickers and the availability check.
func (r BookingRepo) GetBookingsDate() ([]models.DateRange, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "base de datos no disponible"}
	}
	rows, err := db.Query(`SELECT fecha_checkin_fk, fecha_checkout_fk FROM fact_reservas`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	ranges := []models.DateRange{}
	for rows.Next() {
		var dr models.DateRange
		if err := rows.Scan(&dr.CheckIn, &dr.CheckOut); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

// GetBookingStats aggregates the dashboard header numbers.
func (r BookingRepo) GetBookingStats() (models.BookingStats, error) {
	db := r.db()
	if db == nil {
		return models.BookingStats{}, domain.InternalError{Msg: "base de datos no disponible"}
	}

	var (
		stats     models.BookingStats
		confirmed sql.NullInt64
		revenue   sql.NullFloat64
		nights    sql.NullInt64
	)
	err := db.QueryRow(fmt.Sprintf(`
		SELECT
			COUNT(*),
			SUM(CASE WHEN estado_reserva = '%s' THEN 1 ELSE 0 END),
			SUM(precio_total_cotizado_usd),
			SUM(noches_estadia)
		FROM fact_reservas`, models.StatusConfirmed)).
		Scan(&stats.TotalBookings, &confirmed, &revenue, &nights)
	if err != nil {
		return models.BookingStats{}, domain.InternalError{Err: err}
	}
	stats.ConfirmedBookings = int(confirmed.Int64)
	stats.TotalRevenue = revenue.Float64
	stats.TotalNights = int(nights.Int64)
	return stats, nil
}

// DeleteBooking removes one reservation. The mirrored calendar event is
// left behind on purpose; the calendar is a convenience mirror only.
func (r BookingRepo) DeleteBooking(id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "base de datos no disponible"}
	}
	res, err := db.Exec(`DELETE FROM fact_reservas WHERE id_reserva = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "no se pudo eliminar la reserva", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reserva"}
	}
	return nil
}

// GetClosestUpcomingBooking returns the next stay from today on.
func (r BookingRepo) GetClosestUpcomingBooking() (models.Booking, error) {
	db := r.db()
	if db == nil {
		return models.Booking{}, domain.InternalError{Msg: "base de datos no disponible"}
	}
	row := db.QueryRow(`SELECT`+bookingColumns+bookingFrom+`
		WHERE fr.fecha_checkin_fk >= ?
		ORDER BY fr.fecha_checkin_fk ASC
		LIMIT 1`, time.Now().Format("2006-01-02"))
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "reserva"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// SetCalendarEventID stores the provider's event id as a back-reference.
// Best-effort: databases that predate the column are simply skipped.
func (r BookingRepo) SetCalendarEventID(id int64, eventID string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "base de datos no disponible"}
	}
	if !intdb.HasColumn(db, "fact_reservas", "id_evento_calendario") {
		return nil
	}
	_, err := db.Exec(`UPDATE fact_reservas SET id_evento_calendario = ? WHERE id_reserva = ?`,
		intdb.NullIfEmpty(eventID), id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
