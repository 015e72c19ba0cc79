package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamhouse/internal/calendar"
	intconfig "dreamhouse/internal/config"
	router "dreamhouse/internal/http"
	"dreamhouse/internal/http/handlers"
	"dreamhouse/internal/repositories"
	"dreamhouse/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	api := handlers.API{
		DB:        db,
		Repo:      repositories.BookingRepo{DB: db},
		Mirror:    calendarMirror(env),
		JWTSecret: env.JWTSecretBytes(),
	}

	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Servidor escuchando en http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("No se pudo iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("El apagado del servidor falló: %v", err)
	}

	log.Println("Servidor detenido correctamente.")
}

// calendarMirror wires the Google Calendar mirror when credentials are
// present. Bookings work without it; sync is best effort either way.
func calendarMirror(env intconfig.Env) services.CalendarMirror {
	if !env.CalendarConfigured() {
		log.Println("Google Calendar sin configurar; las reservas no se reflejarán en el calendario")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	provider, err := calendar.NewGoogleProvider(ctx, env.GoogleClientEmail, env.GooglePrivateKey, env.GoogleCalendarID)
	if err != nil {
		log.Printf("No se pudo iniciar el cliente de Google Calendar: %v", err)
		return nil
	}
	return calendar.NewMirror(provider)
}
