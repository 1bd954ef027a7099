package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sensibot/crmsync/internal/infra/cursor"
	"github.com/sensibot/crmsync/internal/infra/http/handlers"
	"github.com/sensibot/crmsync/internal/infra/http/middleware"
	"github.com/sensibot/crmsync/internal/infra/integration/monday"
	"github.com/sensibot/crmsync/internal/infra/integration/sensibot"
	"github.com/sensibot/crmsync/internal/infra/mail"
	"github.com/sensibot/crmsync/internal/infra/queue"
	"github.com/sensibot/crmsync/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Cursor backend (file by default; memory/redis/postgres by DSN)
	cursorStore, err := cursor.NewStoreFromDSN(os.Getenv("CURSOR_DSN"))
	if err != nil {
		log.Fatalf("❌ Cursor backend: %v", err)
	}

	// 2. Sync-report pipeline (optional)
	var notifier usecase.SyncNotifier
	var rabbitConn *amqp.Connection
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatalf("❌ RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		notifier = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		if to := os.Getenv("REPORT_EMAIL_TO"); to != "" {
			mailSender := mail.NewEmailSender(
				os.Getenv("MAIL_HOST"), 587,
				os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
				"no-reply@sensibot.io", to,
			)
			worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
			go worker.Start(queue.QueueName)
		}
	}

	// 3. Integration clients
	crm := monday.NewClient(os.Getenv("MONDAY_API_URL"))
	chats := sensibot.NewClient(os.Getenv("SENSIBOT_API_TOKEN"), os.Getenv("SENSIBOT_API_URL"))

	// 4. UseCase
	syncUC := usecase.NewSyncChatsUseCase(crm, chats, cursorStore, notifier)

	// 5. Handlers
	syncHandler := handlers.NewSyncHandler(syncUC)
	authHandler := handlers.NewAuthHandler(
		chats,
		os.Getenv("CLIENT_ID"), os.Getenv("CLIENT_SECRET"), os.Getenv("REDIRECT_URI"),
	)
	healthHandler := handlers.NewHealthHandler(cursorStore, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(middleware.Metrics)

	r.Post("/fetch-chats", syncHandler.Handle)
	r.Post("/api/verify-token", authHandler.HandleVerifyToken)
	r.Get("/oauth/callback", authHandler.HandleOAuthCallback)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("🚀 Sensibot sync running at http://localhost:%s", port)
	http.ListenAndServe(":"+port, r)
}
