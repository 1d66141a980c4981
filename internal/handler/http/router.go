package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kestrelhq/ops-backend-go/internal/handler/http/middleware"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Timesheet  TimesheetHandler
	Invoice    InvoiceHandler
	Deduction  DeductionHandler
	Credential CredentialHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ops-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
				r.Get("/callback/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{userID}", h.User.Get)
					r.Put("/{userID}/rate", h.User.SetHourlyRate)
				})
			})

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/", h.Timesheet.Submit)
				r.Get("/", h.Timesheet.ListMine)
				r.Delete("/{entryID}", h.Timesheet.Delete)

				// Manager or admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/workers/{workerID}", h.Timesheet.ListWorker)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/report", h.Timesheet.MonthReport)
					r.Post("/lock", h.Timesheet.Lock)
					r.Post("/{entryID}/unlock", h.Timesheet.Unlock)
				})
			})

			// Invoices and deductions are admin territory.
			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Invoice.Create)
				r.Get("/", h.Invoice.List)
				r.Get("/pending", h.Invoice.ListPending)
				r.Get("/{invoiceID}", h.Invoice.Get)
				r.Patch("/{invoiceID}/status", h.Invoice.UpdateStatus)
				r.Put("/{invoiceID}/deductions", h.Deduction.Save)
				r.Get("/{invoiceID}/deductions", h.Deduction.Get)
			})

			r.Route("/credential-requests", func(r chi.Router) {
				r.Post("/", h.Credential.Request)
				r.Get("/mine", h.Credential.ListMine)
				r.Delete("/{requestID}", h.Credential.Cancel)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/pending", h.Credential.ListPending)
					r.Post("/{requestID}/approve", h.Credential.Approve)
					r.Post("/{requestID}/reject", h.Credential.Reject)
				})
			})
		})
	})
	return r
}
