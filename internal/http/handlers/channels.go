package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/channels
func (a API) GetChannels(c *gin.Context) {
	channels, err := a.bookingService(c).Channels()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
