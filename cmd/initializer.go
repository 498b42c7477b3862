package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"zappayBack/internal/auth"
	"zappayBack/internal/bronze"
	"zappayBack/internal/config"
	"zappayBack/internal/events"
	"zappayBack/internal/handlers"
	"zappayBack/internal/repositories"
	"zappayBack/internal/services"
	"zappayBack/internal/ws"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	invoiceRepo *repositories.InvoiceRepository
	utilityRepo *repositories.UtilityRepository

	invoiceService *services.InvoiceService
	statusService  *services.StatusService

	invoiceHandler *handlers.InvoiceHandler
	utilityHandler *handlers.UtilityHandler
	debugHandler   *handlers.DebugHandler

	hub *ws.Hub
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	invoiceRepo := repositories.NewInvoiceRepository(db)
	utilityRepo := repositories.NewUtilityRepository(db)

	// Hub with HMAC admission
	authenticator := auth.NewAuthenticator(invoiceRepo)
	hub := ws.NewHub(authenticator, &printfLogger{info: infoLog, err: errorLog})

	// Services
	broker := bronze.NewClient(&http.Client{Timeout: 10 * time.Second}, cfg.Bronze.Address, cfg.BronzeAPIKey, cfg.BronzeAPISecret, nil)
	invoiceService := &services.InvoiceService{
		InvoiceRepo: invoiceRepo,
		Broker:      broker,
		Market:      cfg.Bronze.Market,
		ErrorLog:    errorLog,
	}
	statusService := &services.StatusService{
		InvoiceRepo: invoiceRepo,
		Hub:         hub,
		InfoLog:     infoLog,
	}
	if rdb != nil {
		statusService.Publisher = &events.Publisher{RDB: rdb}
	}

	// Handlers
	invoiceHandler := &handlers.InvoiceHandler{
		Service:     invoiceService,
		Status:      statusService,
		InvoiceRepo: invoiceRepo,
		UtilityRepo: utilityRepo,
		ErrorLog:    errorLog,
	}
	utilityHandler := &handlers.UtilityHandler{UtilityRepo: utilityRepo, ErrorLog: errorLog}
	debugHandler := &handlers.DebugHandler{Debug: cfg.Debug, Hub: hub, InvoiceRepo: invoiceRepo, ErrorLog: errorLog}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		cfg:            cfg,
		db:             db,
		invoiceRepo:    invoiceRepo,
		utilityRepo:    utilityRepo,
		invoiceService: invoiceService,
		statusService:  statusService,
		invoiceHandler: invoiceHandler,
		utilityHandler: utilityHandler,
		debugHandler:   debugHandler,
		hub:            hub,
	}
}

// printfLogger adapts the std logger pair to the hub's Logger.
type printfLogger struct {
	info *log.Logger
	err  *log.Logger
}

func (l *printfLogger) Infof(format string, args ...interface{})  { l.info.Printf(format, args...) }
func (l *printfLogger) Errorf(format string, args ...interface{}) { l.err.Printf(format, args...) }
