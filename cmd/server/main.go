package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	loggingmw "storefront/internal/middleware/logging"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/upload"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	if cfg.Hosted() {
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	}

	logger := logging.New(cfg.LogLevel).With("service", "storefront")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 5*time.Second)
	inserted, err := st.SeedAdmin(seedCtx, cfg.AdminUsername, cfg.AdminPassword)
	seedCancel()
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if inserted {
		logger.Info("seeded default admin", "username", cfg.AdminUsername)
	}

	saver := &upload.Saver{WorkDir: cfg.UploadDir, PublicDir: cfg.PublicDir}
	producer := events.NewProducer(cfg.KafkaBrokers)

	authSvc := &service.AuthService{Store: st, JWTSecret: cfg.JWTSecret}
	productSvc := &service.ProductService{Store: st, Uploads: saver}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	e.Static("/assets/images", cfg.PublicDir)

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: productSvc, Producer: producer},
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()
	_ = st.Close()

	log.Println("storefront stopped")
}
