package httpserver

import (
	"net/http"
	"time"

	"budgeteer-go/internal/config"
	"budgeteer-go/internal/transport/httpserver/handler"
	authmw "budgeteer-go/internal/transport/httpserver/middleware"
	"budgeteer-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/history-data", handlers.HistoryData)
			r.Get("/history-periods", handlers.HistoryPeriods)

			r.Get("/stats/balance", handlers.BalanceStats)
			r.Get("/stats/categories", handlers.CategoriesStats)
			r.Get("/stats/overview", handlers.Overview)

			r.Get("/transactions-history", handlers.TransactionsHistory)
			r.Get("/transactions-history/export", handlers.ExportTransactions)
			r.Post("/transactions", handlers.CreateTransaction)
			r.Delete("/transactions/{id}", handlers.DeleteTransaction)

			r.Get("/categories", handlers.ListCategories)
			r.Post("/categories", handlers.CreateCategory)
			r.Delete("/categories", handlers.DeleteCategory)

			r.Get("/user-settings", handlers.GetUserSettings)
			r.Put("/user-settings", handlers.UpdateUserSettings)
		})
	})

	return r
}
