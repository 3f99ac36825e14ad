package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/ledger"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	domainevent "github.com/jhoicas/backoffice-api/internal/domain/event"
	infraevent "github.com/jhoicas/backoffice-api/internal/infrastructure/event"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/lock"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := migrateUp(cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Eventos de dominio: bus local y, con Redis, difusión a las demás instancias.
	bus := infraevent.NewBus(log.Component("events"))
	var (
		publisher domainevent.Publisher = bus
		locker    ledger.DebtLocker     = lock.NewLocalLocker()
		relay     *infraevent.RedisRelay
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		locker = lock.NewRedisLocker(rdb, cfg.Ledger.DebtLockTTL, log.Component("lock"))
		relay = infraevent.NewRedisRelay(rdb, cfg.Redis.Channel, bus, log.Component("events"))
		publisher = relay
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: candados y eventos solo en este proceso")
	}

	txRunner := postgres.NewTxRunner(pool)
	ledgerLog := log.Component("ledger")

	availabilityUC := ledger.NewAvailabilityUseCase(txRunner, ledgerLog)
	bus.Subscribe(availabilityUC.HandleEvent)

	debtUC := ledger.NewDebtUseCase(txRunner, locker, publisher, ledgerLog)
	arrivalUC := ledger.NewArrivalUseCase(txRunner, publisher, ledgerLog)
	receiptUC := ledger.NewReceiptUseCase(txRunner, publisher, ledgerLog)
	serialCheckUC := ledger.NewSerialCheckUseCase(txRunner)
	supplierUC := usecase.NewSupplierUseCase(postgres.NewSupplierRepository(pool))
	cashUC := usecase.NewCashRegisterUseCase(postgres.NewCashRegisterRepository(pool))

	app := httpRouter.NewApp(cfg, log.Component("http"))
	httpRouter.Router(app, httpRouter.RouterDeps{
		Suppliers:    supplierUC,
		Arrivals:     arrivalUC,
		Receipts:     receiptUC,
		Debts:        debtUC,
		CashRegister: cashUC,
		Availability: availabilityUC,
		SerialCheck:  serialCheckUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
	})

	sched := scheduler.New(cfg.Scheduler, debtUC, log.Component("scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	if relay != nil {
		g.Go(func() error { return relay.Run(gctx, nil) })
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		sched.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

func migrateUp(db config.DBConfig, log *logger.Logger) error {
	m, err := postgres.NewMigrator(db.ConnectionString(), log.Component("migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
