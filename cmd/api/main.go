package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/infra/auth"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/http/router"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Fonte do dataset inicial
	opts := []crm.Option{crm.WithSeedDelay(cfg.SeedDelay)}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ banco indisponível, usando dataset embutido: %v", err)
		} else {
			db = conn
			defer db.Close()
			opts = append(opts, crm.WithSource(database.NewSeedRepository(db)))
		}
	}

	// 2. Store
	store := crm.New(opts...)
	defer store.Close()
	store.Subscribe(middleware.StoreMetrics(store))

	// 3. Mensageria
	var amqpConn *amqp091.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ indisponível, eventos não serão publicados: %v", err)
		} else {
			defer rabbitMQ.Close()
			amqpConn = rabbitMQ.Conn

			publisher := queue.NewEventPublisher(rabbitMQ.Ch)
			publisher.OnError = func(error) { middleware.RecordIntegrationError("rabbitmq") }
			store.Subscribe(publisher.Listener())

			if cfg.Mail.Enabled() {
				sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
				consumer, err := rabbitMQ.Conn.Channel()
				if err != nil {
					log.Printf("⚠️ falha ao abrir canal do worker: %v", err)
				} else {
					w := queue.NewWorker(consumer, sender, cfg.Mail.SalesInbox)
					go func() {
						if err := w.Start(ctx, queue.QueueName); err != nil {
							log.Printf("❌ worker: %v", err)
						}
					}()
				}
			}
		}
	}

	overdue := worker.NewOverdueLeadWorker(store, cfg.OverdueInterval)
	overdue.Report = middleware.SetOverdueLeads
	go overdue.Start(ctx)

	store.Start()

	// 4. Auth
	authn, err := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.SessionTTL, cfg.LoginEmail, cfg.LoginPassword)
	if err != nil {
		log.Fatalf("❌ falha ao configurar autenticação: %v", err)
	}

	// 5. Handlers
	sessions := handlers.NewSessionHandler(authn, nil)
	sessions.SecureCookie = cfg.SecureCookie
	defer sessions.Close()

	r := router.New(router.Handlers{
		Contacts:  handlers.NewContactHandler(usecase.NewContactUseCase(store)),
		Leads:     handlers.NewLeadHandler(usecase.NewLeadUseCase(store)),
		Analytics: handlers.NewAnalyticsHandler(usecase.NewAnalyticsUseCase(store)),
		Sessions:  sessions,
		Health:    handlers.NewHealthHandler(store, db, amqpConn),
		Settings:  handlers.NewSettingsHandler(handlers.Settings{
			SeedDelay:       cfg.SeedDelay.String(),
			OverdueInterval: cfg.OverdueInterval.String(),
			SessionTTL:      cfg.SessionTTL.String(),
			SecureCookie:    cfg.SecureCookie,
			AllowedOrigins:  cfg.AllowedOrigins,
			LoginEmail:      cfg.LoginEmail,
			Database:        db != nil,
			RabbitMQ:        amqpConn != nil,
			Mail:            cfg.Mail.Enabled(),
		}),
	}, authn, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("🔥 Ligue CRM rodando em %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ shutdown: %v", err)
	}
}
