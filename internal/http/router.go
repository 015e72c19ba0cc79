package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dreamhouse/internal/config"
	"dreamhouse/internal/http/handlers"
	"dreamhouse/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, a handlers.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/db-check", a.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", a.Login)

		api.GET("/channels", a.GetChannels)

		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(env.JWTSecretBytes()))
		// fixed paths before :id so gin does not shadow them
		bookings.GET("/dates", a.GetBookingDates)
		bookings.GET("/stats", a.GetBookingStats)
		bookings.GET("/upcoming", a.GetClosestUpcomingBooking)
		bookings.GET("", a.ListBookings)
		bookings.POST("", a.CreateBooking)
		bookings.GET("/:id", a.GetBooking)
		bookings.PUT("/:id", a.UpdateBooking)
		bookings.DELETE("/:id", a.DeleteBooking)
		bookings.GET("/:id/pdf", a.GetBookingPDF)
	}

	return r
}
