package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/budget"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/otp"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/portfolio"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/quotes"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/reports"
	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/transactions"
)

type Router struct {
	AuthHandler        *auth.Handler
	TransactionHandler *transactions.Handler
	BudgetHandler      *budget.Handler
	InvestmentHandler  *portfolio.Handler
	QuoteHandler       *quotes.Handler
	ReportsHandler     *reports.Handler
	OTPHandler         *otp.Handler
	AuthMW             fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/api/auth/signup", RateLimitAuth(), r.AuthHandler.Signup)
	app.Post("/api/auth/signin", RateLimitAuth(), r.AuthHandler.Login)
	app.Post("/api/password-reset", RateLimitAuth(), r.OTPHandler.PasswordReset)

	app.Get("/api/transactions", r.AuthMW, r.TransactionHandler.List)
	app.Post("/api/transactions", r.AuthMW, RateLimitWrite(), r.TransactionHandler.Create)
	app.Put("/api/transactions/:id", r.AuthMW, RateLimitWrite(), r.TransactionHandler.Update)
	app.Delete("/api/transactions/:id", r.AuthMW, RateLimitWrite(), r.TransactionHandler.Delete)

	app.Get("/api/budgets", r.AuthMW, r.BudgetHandler.List)
	app.Post("/api/budgets", r.AuthMW, RateLimitWrite(), r.BudgetHandler.Create)
	app.Put("/api/budgets/:id", r.AuthMW, RateLimitWrite(), r.BudgetHandler.Update)
	app.Delete("/api/budgets/:id", r.AuthMW, RateLimitWrite(), r.BudgetHandler.Delete)

	app.Get("/api/investments", r.AuthMW, r.InvestmentHandler.List)
	app.Post("/api/investments", r.AuthMW, RateLimitWrite(), r.InvestmentHandler.Create)
	app.Put("/api/investments/:id", r.AuthMW, RateLimitWrite(), r.InvestmentHandler.Update)
	app.Delete("/api/investments/:id", r.AuthMW, RateLimitWrite(), r.InvestmentHandler.Delete)

	app.Get("/api/stocks/search", r.AuthMW, r.QuoteHandler.Search)
	app.Get("/api/stocks/quote", r.AuthMW, r.QuoteHandler.Quote)

	app.Get("/api/dashboard", r.AuthMW, r.ReportsHandler.Dashboard)
	app.Get("/api/reports/statement", r.AuthMW, r.ReportsHandler.Statement)
}
