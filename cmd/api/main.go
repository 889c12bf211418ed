package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workpulse/attendance-gateway/internal/config"
	appHTTP "github.com/workpulse/attendance-gateway/internal/handler/http"
	"github.com/workpulse/attendance-gateway/internal/pkg/attendanceapi"
	"github.com/workpulse/attendance-gateway/internal/pkg/geo"
	"github.com/workpulse/attendance-gateway/internal/pkg/jwt"
	attendanceService "github.com/workpulse/attendance-gateway/internal/service/attendance"
	dashboardService "github.com/workpulse/attendance-gateway/internal/service/dashboard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	store := attendanceapi.NewClient(cfg.AttendanceStore, jwt.ContextCredentialProvider{}, cfg.App.Timezone)
	geoProvider := geo.NewHTTPProvider(cfg.Geolocation.BaseURL, cfg.Geolocation.Timeout)

	sessionService := attendanceService.NewSessionService(store, geoProvider, cfg.Office, cfg.App.Timezone)
	dashboardSvc := dashboardService.NewDashboardService(store, cfg.App.Timezone)

	attendanceHandler := appHTTP.NewAttendanceHandler(sessionService)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, dashboardHandler, cfg.App.Env)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Println("Server error:", err)
	}
}
