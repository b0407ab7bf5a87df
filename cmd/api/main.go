package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/budget"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/mailer"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/otp"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/portfolio"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/quotes"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/reports"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/router"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}
	secret := mustJWTSecret(logger)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating pgx pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("error pinging database")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware())
	app.Use(requestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	authRepo := auth.NewRepository(pool)
	txRepo := transactions.NewRepository(pool)
	budgetRepo := budget.NewRepository(pool)
	investRepo := portfolio.NewRepository(pool)

	brevo := mailer.NewBrevoFromEnv(logger)
	otpService := otp.NewService(otp.NewPgStore(pool), brevo, authRepo, logger)
	alphaVantage := quotes.NewAlphaVantageFromEnv(logger)

	r := &router.Router{
		AuthHandler:        auth.NewHandler(authRepo, secret),
		TransactionHandler: transactions.NewHandler(txRepo),
		BudgetHandler:      budget.NewHandler(budgetRepo),
		InvestmentHandler:  portfolio.NewHandler(investRepo, txRepo),
		QuoteHandler:       quotes.NewHandler(alphaVantage),
		ReportsHandler:     reports.NewHandler(txRepo, investRepo),
		OTPHandler:         otp.NewHandler(otpService),
		AuthMW:             auth.Middleware(secret),
	}
	r.RegisterRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("listening")
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

func mustJWTSecret(logger zerolog.Logger) []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		logger.Fatal().Msg("JWT_SECRET is not set")
	}
	return []byte(secret)
}
