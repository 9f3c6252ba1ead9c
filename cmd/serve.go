package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/barbershop-reservation/internal/api/handlers"
	createReservationHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/get_available_slots"
	getClosedDaysHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/get_closed_days"
	getMenusHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/get_menus"
	getStaffsHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/get_staffs"
	listReservationsHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/list_reservations"
	updateReservationStatusHandler "github.com/m04kA/barbershop-reservation/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/barbershop-reservation/internal/api/middleware"
	"github.com/m04kA/barbershop-reservation/internal/availability"
	"github.com/m04kA/barbershop-reservation/internal/domain"
	"github.com/m04kA/barbershop-reservation/internal/infra/cache/menucache"
	catalogRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/customer"
	"github.com/m04kA/barbershop-reservation/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/barbershop-reservation/internal/infra/storage/reservation"
	"github.com/m04kA/barbershop-reservation/internal/integrations/line"
	catalogService "github.com/m04kA/barbershop-reservation/internal/service/catalog"
	reservationsService "github.com/m04kA/barbershop-reservation/internal/service/reservations"
	createReservationUC "github.com/m04kA/barbershop-reservation/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/barbershop-reservation/internal/usecase/get_available_slots"
	getClosedDaysUC "github.com/m04kA/barbershop-reservation/internal/usecase/get_closed_days"
	"github.com/m04kA/barbershop-reservation/pkg/dbmetrics"
	"github.com/m04kA/barbershop-reservation/pkg/metrics"
	"github.com/m04kA/barbershop-reservation/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath, migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving")

	return cmd
}

func serve(configPath string, migrateUp bool) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting barbershop-reservation...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики (если включены). nil-коллектор безопасен для всех потребителей
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// База данных
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	stopPoolStats := make(chan struct{})
	defer close(stopPoolStats)
	wrappedDB.StartPoolStatsCollector(time.Duration(cfg.Metrics.PoolStatsInterval)*time.Second, stopPoolStats)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	var applied []string
	if migrateUp {
		applied, err = migrations.NewMigrator(wrappedDB, txMgr, log).Up(ctx)
		if err != nil {
			return err
		}
		log.Info("Migrations applied: %d", len(applied))
	}

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Кеш меню (опционально)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis %s is unreachable, menus will be read from the database until it recovers: %v",
				cfg.Redis.Addr, err)
		} else {
			log.Info("Menu cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.MenuTTL)
		}
	}
	menus := menucache.New(
		catalogRepository,
		redisClient,
		cfg.Redis.MenuKey,
		time.Duration(cfg.Redis.MenuTTL)*time.Second,
		metricsCollector,
		log,
	)
	// Миграции могли изменить справочник меню
	if len(applied) > 0 {
		if err := menus.Invalidate(ctx); err != nil {
			log.Warn("Failed to invalidate menu cache after migrations: %v", err)
		}
	}

	// Правила салона
	location := cfg.Location()
	calendar := availability.DefaultCalendar(location)
	log.Info("Shop calendar: timezone=%s, overlap_mode=%s, transition_policy=%s",
		location, cfg.OverlapMode(), cfg.TransitionPolicy().Name())

	// Сервисы и use cases
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		customerRepository,
		txMgr,
		cfg.TransitionPolicy(),
		log,
	)
	catalogSvc := catalogService.NewService(menus, catalogRepository, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		customerRepository,
		&catalogWithCachedMenus{Repository: catalogRepository, menus: menus},
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		menus,
		calendar,
		cfg.OverlapMode(),
		log,
	)
	getClosedDaysUseCase := getClosedDaysUC.NewUseCase(calendar, log)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, location, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getClosedDays := getClosedDaysHandler.NewHandler(getClosedDaysUseCase, location, log)
	getMenus := getMenusHandler.NewHandler(catalogSvc, log)
	getStaffs := getStaffsHandler.NewHandler(catalogSvc, log)

	verifier := line.NewVerifier(cfg.Auth.LineChannelID, cfg.Auth.LineChannelSecret, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/menus", getMenus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staffs", getStaffs.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/closed-days", getClosedDays.Handle).Methods(http.MethodGet)

	if cfg.Auth.AllowAnonymous {
		api.HandleFunc("/public/reservations", createReservation.Handle).Methods(http.MethodPost)
		api.HandleFunc("/public/reservations", listReservations.Handle).Methods(http.MethodGet)
		log.Warn("Anonymous reservation endpoints are enabled under /api/v1/public")
	}

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <LINE ID token>)
	// ============================================================

	protected := api.PathPrefix("/reservations").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	protected.HandleFunc("", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("", listReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// catalogWithCachedMenus отдает меню через кеш, проверку мастера через БД
type catalogWithCachedMenus struct {
	*catalogRepo.Repository
	menus *menucache.Cache
}

func (c *catalogWithCachedMenus) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	return c.menus.ListMenus(ctx)
}
