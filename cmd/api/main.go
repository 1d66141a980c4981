package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kestrelhq/ops-backend-go/internal/config"
	appHTTP "github.com/kestrelhq/ops-backend-go/internal/handler/http"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/email"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/jwt"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/oauth"
	"github.com/kestrelhq/ops-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/kestrelhq/ops-backend-go/internal/service/auth"
	credentialService "github.com/kestrelhq/ops-backend-go/internal/service/credential"
	deductionService "github.com/kestrelhq/ops-backend-go/internal/service/deduction"
	invoiceService "github.com/kestrelhq/ops-backend-go/internal/service/invoice"
	timesheetService "github.com/kestrelhq/ops-backend-go/internal/service/timesheet"
	userService "github.com/kestrelhq/ops-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	credentialRequestRepo := postgresql.NewCredentialRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTRepository, JWTService, GoogleService)
	userSvc := userService.NewUserService(db, userRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, timeEntryRepo, userRepo)
	invoiceSvc := invoiceService.NewInvoiceService(db, invoiceRepo, userRepo)
	deductionSvc := deductionService.NewDeductionService(db, deductionRepo, invoiceRepo)
	credentialSvc := credentialService.NewCredentialService(db, credentialRequestRepo, userRepo, emailService, cfg.App.FrontendURL)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		User:       appHTTP.NewUserHandler(userSvc),
		Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc),
		Invoice:    appHTTP.NewInvoiceHandler(invoiceSvc),
		Deduction:  appHTTP.NewDeductionHandler(deductionSvc),
		Credential: appHTTP.NewCredentialHandler(credentialSvc),
	}

	router := appHTTP.NewRouter(JWTService, cfg.App.FrontendURL, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
