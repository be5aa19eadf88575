package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"travelmail-service/internal/domain/repository"
	"travelmail-service/internal/infrastructure/config"
	"travelmail-service/internal/infrastructure/oauth"
	"travelmail-service/internal/infrastructure/pdf"
	"travelmail-service/internal/infrastructure/persistence"
	"travelmail-service/internal/infrastructure/router"
	"travelmail-service/internal/interface/mailbox"
	storeRepo "travelmail-service/internal/interface/repository"
	"travelmail-service/internal/usecase"
	"travelmail-service/pkg/extract"
	"travelmail-service/pkg/logger"
	"travelmail-service/pkg/metrics"
	"travelmail-service/templates"
)

func main() {
	log := logger.NewLogger()
	log.Info("Starting Travelmail Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("travelmail")

	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Reference data is optional; without it bookings keep raw carrier
	// codes and no local-time annotation
	var airlineRepository repository.AirlineRepository
	var timezoneRepository repository.TimezoneRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = storeRepo.NewGormAirlineRepository(gormDB)
		timezoneRepository = storeRepo.NewGormTimezoneRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, airline and timezone lookups disabled")
	}

	messageRepo := storeRepo.NewMongoMessageRepository(db)
	passengerRepo := storeRepo.NewMongoPassengerRepository(db)
	bookingRepo := storeRepo.NewMongoBookingRepository(db)
	notificationRepo := storeRepo.NewMongoNotificationRepository(db)
	mailerRepo := storeRepo.NewHTTPMailerRepository(cfg.MailerEndpoint, cfg.MailerToken, log)

	reconciler := usecase.NewReconciler(
		passengerRepo,
		bookingRepo,
		notificationRepo,
		mailerRepo,
		airlineRepository,
		timezoneRepository,
		log,
		m,
	)

	normalizer := extract.NewNormalizer(pdf.NewExtractor(), log)
	extractor := extract.NewTicketExtractor(log)
	ticketHandler := templates.NewItineraryTicketHandler(
		normalizer,
		extractor,
		reconciler,
		cfg.ConfidenceThreshold,
		log,
		m,
	)

	subjectRouter := router.NewSubjectRouter(log)
	subjectRouter.Register(ticketHandler)

	pipeline := usecase.NewPipeline(messageRepo, subjectRouter, log, m)

	if cfg.MailboxConfigured() {
		mailPort, err := strconv.Atoi(cfg.MailPort)
		if err != nil {
			log.Fatal("Invalid MAIL_PORT", "value", cfg.MailPort)
		}

		watcherCfg := mailbox.Config{
			Host:          cfg.MailHost,
			Port:          mailPort,
			Username:      cfg.MailUsername,
			Password:      cfg.MailPassword,
			Folder:        cfg.MailFolder,
			ReconnectWait: cfg.MailReconnectWait,
		}
		if cfg.MailAuth == "xoauth2" {
			watcherCfg.TokenSource = oauth.NewRefreshTokenSource(
				ctx,
				cfg.MailClientID,
				cfg.MailClientSecret,
				cfg.MailRefreshToken,
			)
		}

		watcher := mailbox.NewWatcher(watcherCfg, nil, pipeline, log, m)
		go watcher.Run(ctx)

		if lastUID, err := messageRepo.LastUID(ctx); err == nil && lastUID > 0 {
			log.Info("Resuming mailbox watch", "lastUid", lastUID)
		}
	} else {
		log.Warn("Mailbox credentials incomplete, mail monitoring disabled")
	}

	go pipeline.StartSweeper(ctx, cfg.SweepInterval)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Travelmail Service stopped")
}
