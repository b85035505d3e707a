package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dormhub/internal/config"
	"dormhub/internal/database"
	"dormhub/internal/dispatch"
	"dormhub/internal/docstore"
	"dormhub/internal/domain"
	"dormhub/internal/httpapi"
	"dormhub/internal/logger"
	"dormhub/internal/roomstore"
	"dormhub/internal/service"
	"dormhub/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "dormhub")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessions := store.NewRedisKV(redisClient)

	// Document store: Postgres when available, in-memory fallback so the
	// service stays usable in dev without a database.
	var db *sql.DB
	var docs docstore.Store = docstore.NewMemoryStore()
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			pg := docstore.NewPostgresStore(d)
			if err := pg.EnsureSchema(context.Background()); err != nil {
				log.Warn("Schema setup failed, falling back to in-memory store", zap.Error(err))
				_ = d.Close()
			} else {
				db = d
				docs = pg
				log.Info("DB enabled for dormhub")
			}
		} else {
			log.Warn("DB enabled but connection failed, falling back to in-memory store", zap.Error(err))
		}
	}

	// Dev bootstrap: make sure an admin login exists so the app is usable on
	// first start. Not repeated when the document already exists.
	if os.Getenv("SEED_ADMIN") != "false" {
		seedAdmin(context.Background(), docs, log)
	}

	loop := dispatch.NewLoop(log)
	loop.Start()

	rooms := roomstore.New(loop, log)

	roomService := service.NewRoomService(docs, rooms, log)
	if n, err := roomService.ReloadRooms(context.Background()); err != nil {
		log.Warn("Initial room load failed", zap.Error(err))
	} else {
		log.Info("Room cache loaded", zap.Int("rooms", n))
	}

	var notifier service.Notifier = service.NopNotifier{}
	if cfg.Webhook.Enabled && cfg.Webhook.URL != "" {
		notifier = service.NewWebhookNotifier(cfg.Webhook.URL, log)
	}

	authService := service.NewAuthService(docs, sessions, cfg.Session.TTL, log)
	buildingService := service.NewBuildingService(docs, rooms, log)
	residentService := service.NewResidentService(docs, rooms, log)
	assignmentService := service.NewAssignmentService(docs, rooms, cfg.Contract.DefaultType, log)
	reservationService := service.NewReservationService(docs, log)
	contractService := service.NewContractService(docs, log)
	paymentService := service.NewPaymentService(docs, log)
	maintenanceService := service.NewMaintenanceService(docs, notifier, log)
	announcementService := service.NewAnnouncementService(docs, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, log))
	router.RegisterRoomRoutes(httpapi.NewRoomHandler(roomService, log))
	router.RegisterBuildingRoutes(httpapi.NewBuildingHandler(buildingService, log))
	router.RegisterResidentRoutes(httpapi.NewResidentHandler(residentService, assignmentService, log))
	router.RegisterReservationRoutes(httpapi.NewReservationHandler(reservationService, log))
	router.RegisterContractRoutes(httpapi.NewContractHandler(contractService, log))
	router.RegisterPaymentRoutes(httpapi.NewPaymentHandler(paymentService, log))
	router.RegisterMaintenanceRoutes(httpapi.NewMaintenanceHandler(maintenanceService, log))
	router.RegisterAnnouncementRoutes(httpapi.NewAnnouncementHandler(announcementService, log))
	router.RegisterHealthRoutes()

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("Server exited", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	loop.Stop()
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}

func seedAdmin(ctx context.Context, docs docstore.Store, log *zap.Logger) {
	const adminID = "admin"
	if _, err := docs.Get(ctx, service.ColUsers, adminID); err == nil {
		return
	}

	admin := domain.Admin{
		UserID:       adminID,
		Email:        "admin@dormhub.local",
		PasswordHash: domain.HashPassword("ChangeMe123!"),
		FullName:     "Administrator",
		StaffRole:    "Manager",
	}
	if err := docs.Set(ctx, service.ColUsers, adminID, admin.ToDoc()); err != nil {
		log.Warn("Admin bootstrap failed", zap.Error(err))
		return
	}
	log.Info("Seeded default admin account", zap.String("email", admin.Email))
}
