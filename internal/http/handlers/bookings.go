package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"dreamhouse/internal/domain"
	"dreamhouse/internal/domain/models"
	"dreamhouse/internal/services"
	"dreamhouse/internal/utils"

	"github.com/gin-gonic/gin"
)

// bookingPayload mirrors the dashboard form: monetary fields travel as
// strings and only the selected currency's total is filled in.
type bookingPayload struct {
	TenantName     string `json:"tenant_name"`
	GuestPhone     string `json:"guest_phone"`
	TenantQuantity int    `json:"tenant_quantity"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	ChannelID      int64  `json:"channel_id"`
	BookingAdv     bool   `json:"booking_adv"`
	Noon           bool   `json:"noon"`
	BookingState   string `json:"booking_state"`

	Currency      string `json:"currency"`
	TotalUSD      string `json:"booking_total_price_usd"`
	TotalARS      string `json:"booking_total_price_ars"`
	Comission     string `json:"comission"`
	PrepaymentUSD string `json:"prepayment_usd"`
	PrepaymentARS string `json:"prepayment_ars"`
	BalanceUSD    string `json:"balancepayment_usd"`
	BalanceARS    string `json:"balancepayment_ars"`
}

func (p bookingPayload) total() string {
	if strings.EqualFold(strings.TrimSpace(p.Currency), "ARS") {
		return p.TotalARS
	}
	return p.TotalUSD
}

// bookingDTO is the flat read shape the dashboard consumes; dates are
// plain YYYY-MM-DD strings, unused-currency amounts stay null.
type bookingDTO struct {
	ID            int64    `json:"id"`
	BookingDate   string   `json:"booking_date"`
	CheckIn       string   `json:"check_in"`
	CheckOut      string   `json:"check_out"`
	ChannelID     int64    `json:"channel_id"`
	ChannelName   string   `json:"channel_name"`
	GuestName     string   `json:"guest_name"`
	GuestPhone    string   `json:"guest_phone,omitempty"`
	GuestCount    int      `json:"guest_count"`
	NightsStay    int      `json:"nights_stay"`
	Status        string   `json:"status"`
	Advertising   bool     `json:"advertising_booking"`
	HalfDay       bool     `json:"half_day"`
	Currency      string   `json:"currency"`
	TotalUSD      *float64 `json:"total_price_usd"`
	TotalARS      *float64 `json:"total_price_ars"`
	CommissionUSD *float64 `json:"channel_commission_usd"`
	DepositUSD    *float64 `json:"deposit_amount_usd"`
	DepositARS    *float64 `json:"deposit_payment_ars"`
	BalanceUSD    *float64 `json:"balance_amount_usd"`
	BalanceARS    *float64 `json:"balance_payment_ars"`
	DepositRate   *float64 `json:"deposit_exchange_rate"`
	BalanceRate   *float64 `json:"balance_exchange_rate"`
}

func toBookingDTO(b models.Booking) bookingDTO {
	return bookingDTO{
		ID:            b.ID,
		BookingDate:   utils.FormatDateTime(b.BookingDate),
		CheckIn:       utils.FormatDate(b.CheckIn),
		CheckOut:      utils.FormatDate(b.CheckOut),
		ChannelID:     b.ChannelID,
		ChannelName:   b.ChannelName,
		GuestName:     b.GuestName,
		GuestPhone:    b.GuestPhone,
		GuestCount:    b.GuestCount,
		NightsStay:    b.Nights,
		Status:        b.Status,
		Advertising:   b.Advertising,
		HalfDay:       b.HalfDay,
		Currency:      string(b.Pricing.Currency),
		TotalUSD:      b.Pricing.TotalUSD,
		TotalARS:      b.Pricing.TotalARS,
		CommissionUSD: b.Pricing.CommissionUSD,
		DepositUSD:    b.Pricing.DepositUSD,
		DepositARS:    b.Pricing.DepositARS,
		BalanceUSD:    b.Pricing.BalanceUSD,
		BalanceARS:    b.Pricing.BalanceARS,
		DepositRate:   b.Pricing.DepositExchangeRate,
		BalanceRate:   b.Pricing.BalanceExchangeRate,
	}
}

type dateRangeDTO struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// POST /api/bookings
func (a API) CreateBooking(c *gin.Context) {
	var req bookingPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := a.bookingService(c).CreateBooking(c.Request.Context(), services.CreateBookingInput{
		GuestName:   req.TenantName,
		GuestPhone:  req.GuestPhone,
		GuestCount:  req.TenantQuantity,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		ChannelID:   req.ChannelID,
		Advertising: req.BookingAdv,
		HalfDay:     req.Noon,
		Currency:    req.Currency,
		Total:       req.total(),
		Commission:  req.Comission,
		DepositUSD:  req.PrepaymentUSD,
		DepositARS:  req.PrepaymentARS,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Reserva creada exitosamente",
		"booking": toBookingDTO(booking),
	})
}

// PUT /api/bookings/:id
func (a API) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req bookingPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := a.bookingService(c).UpdateBooking(c.Request.Context(), services.UpdateBookingInput{
		ID:          id,
		GuestName:   req.TenantName,
		GuestPhone:  req.GuestPhone,
		GuestCount:  req.TenantQuantity,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		ChannelID:   req.ChannelID,
		Status:      req.BookingState,
		Advertising: req.BookingAdv,
		HalfDay:     req.Noon,
		Currency:    req.Currency,
		Total:       req.total(),
		Commission:  req.Comission,
		DepositUSD:  req.PrepaymentUSD,
		DepositARS:  req.PrepaymentARS,
		BalanceUSD:  req.BalanceUSD,
		BalanceARS:  req.BalanceARS,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reserva actualizada exitosamente",
		"booking": toBookingDTO(booking),
	})
}

// GET /api/bookings/:id
func (a API) GetBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := a.bookingService(c).GetBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingDTO(booking))
}

// GET /api/bookings
func (a API) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	startDate := strings.TrimSpace(c.Query("start_date"))
	endDate := strings.TrimSpace(c.Query("end_date"))

	bookings, total, err := a.bookingService(c).ListBookings(page, limit, startDate, endDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	dtos := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dtos = append(dtos, toBookingDTO(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": dtos,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// DELETE /api/bookings/:id
func (a API) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.bookingService(c).DeleteBooking(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reserva eliminada exitosamente",
	})
}

// GET /api/bookings/dates
func (a API) GetBookingDates(c *gin.Context) {
	var exclude int64
	if raw := strings.TrimSpace(c.Query("exclude")); raw != "" {
		exclude, _ = strconv.ParseInt(raw, 10, 64)
	}

	ranges, err := a.bookingService(c).UnavailableDates(exclude)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]dateRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, dateRangeDTO{
			CheckIn:  utils.FormatDate(r.CheckIn),
			CheckOut: utils.FormatDate(r.CheckOut),
		})
	}
	c.JSON(http.StatusOK, gin.H{"dates": out})
}

// GET /api/bookings/stats
func (a API) GetBookingStats(c *gin.Context) {
	stats, err := a.bookingService(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/bookings/upcoming
func (a API) GetClosestUpcomingBooking(c *gin.Context) {
	booking, err := a.bookingService(c).ClosestUpcoming()
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusOK, gin.H{"booking": nil})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": toBookingDTO(booking)})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "id inválido", nil)
		return 0, false
	}
	return id, true
}
