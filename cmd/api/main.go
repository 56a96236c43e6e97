package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/Marton-art/proyecto-integrado.ignore/docs"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/auth"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/carga"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/application/usecase"
	infrapdf "github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/pdf"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/postgres"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/spreadsheet"
	httpRouter "github.com/Marton-art/proyecto-integrado.ignore/internal/interfaces/http"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/config"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/logger"
)

// @title                       Calificación Tributaria API
// @version                     1.0
// @description                 Mantenedor y cargas masivas de calificaciones tributarias de subsidiarias.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	subsidiariaRepo := postgres.NewSubsidiariaRepository(pool)
	calificacionRepo := postgres.NewCalificacionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	codec := spreadsheet.NewCodec(spreadsheet.CSVOptions{
		Delimiter:   cfg.Import.Delimiter(),
		DecimalMark: cfg.Import.Decimal(),
		Charset:     cfg.Import.Charset,
	})
	cargaSvc := carga.NewService(codec, codec, subsidiariaRepo, txRunner, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	subsidiariaUC := usecase.NewSubsidiariaUseCase(subsidiariaRepo)
	calificacionUC := usecase.NewCalificacionUseCase(
		calificacionRepo, subsidiariaRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxFileMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Calificación Tributaria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		SubsidiariaUC:  subsidiariaUC,
		CalificacionUC: calificacionUC,
		CargaSvc:       cargaSvc,
		JWTSecret:      cfg.JWT.Secret,
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
