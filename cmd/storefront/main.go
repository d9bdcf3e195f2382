package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecobazaar-storefront/internal/application/cart"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/catalog"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/session"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/toggle"
	"github.com/jhoicas/ecobazaar-storefront/internal/application/usecase"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/entity"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/internal/infrastructure/postgres"
	"github.com/jhoicas/ecobazaar-storefront/internal/infrastructure/remote"
	"github.com/jhoicas/ecobazaar-storefront/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/ecobazaar-storefront/internal/interfaces/http"
	"github.com/jhoicas/ecobazaar-storefront/pkg/config"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("remote", cfg.Remote.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := openSessionStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Session.Driver).Msg("almacenamiento de sesión")
	}
	defer storage.Close()

	// Sin SESSION_SECRET la sesión persistida no sobrevive a un reinicio.
	secret := cfg.Session.Secret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("SESSION_SECRET vacío: se usa un secreto efímero")
	}

	client := remote.NewClient(cfg.Remote, log)
	store := session.NewStore(client, storage, session.TokenConfig{
		Secret:     secret,
		Issuer:     cfg.Session.Issuer,
		TTLMinutes: cfg.Session.TTLMinutes,
	}, log)

	bounds := entity.CatalogBounds{
		MaxPrice:    decimal.NewFromInt(int64(cfg.Catalog.MaxPrice)),
		MaxCarbon:   decimal.NewFromInt(int64(cfg.Catalog.MaxCarbon)),
		DefaultSort: cfg.Catalog.DefaultSort,
	}
	cartSync := cart.NewSynchronizer(client, client, cfg.Remote.Timeout, log)
	engine := catalog.NewEngine(client, bounds, cfg.Remote.Timeout, log)
	wishlist := toggle.NewWishlist(client, cartSync, toggle.OptimisticAfter, log)
	moderation := toggle.NewModeration(client, client, toggle.OptimisticAfter, log)

	// El orden de suscripción es el orden de notificación.
	store.Subscribe(cartSync)
	store.Subscribe(engine)
	store.Subscribe(wishlist)
	store.Subscribe(moderation)

	store.Restore(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Remote.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:    store,
		Cart:       cartSync,
		Catalog:    engine,
		Wishlist:   wishlist,
		Moderation: moderation,
		ProductUC:  usecase.NewProductUseCase(client, client, store),
		OrderUC:    usecase.NewOrderUseCase(client, store),
		ReviewUC:   usecase.NewReviewUseCase(client, store),
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openSessionStorage abre el almacenamiento según SESSION_DRIVER.
func openSessionStorage(ctx context.Context, cfg *config.Config) (repository.SessionStorage, error) {
	if cfg.Session.Driver == config.DriverPostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewSessionRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	}
	repo, err := sqlite.Open(cfg.Session.SQLitePath)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
