package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/pdf
//
// ?preview=true serves the document inline; the default forces a download.
func (a API) GetBookingPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	data, filename, err := a.docsService(c).BookingPDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("preview") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
