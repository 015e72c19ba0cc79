package handlers

import (
	"database/sql"
	"net/http"

	"dreamhouse/internal/http/middleware"
	"dreamhouse/internal/repositories"
	"dreamhouse/internal/services"

	"github.com/gin-gonic/gin"
)

// API groups the injected dependencies for every handler: no ambient
// globals, everything substitutable in tests.
type API struct {
	DB        *sql.DB
	Repo      repositories.BookingRepo
	Mirror    services.CalendarMirror
	JWTSecret []byte
}

func (a API) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Repo:      a.Repo,
		Mirror:    a.Mirror,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Repo:      a.Repo,
		RequestID: middleware.GetRequestID(c),
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "cuerpo vacío", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "payload inválido", err.Error())
		return false
	}
	return true
}
