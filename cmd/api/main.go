package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kanak0604/market-campaigns/internal/infra/database"
	"github.com/kanak0604/market-campaigns/internal/infra/http/handlers"
	custommw "github.com/kanak0604/market-campaigns/internal/infra/http/middleware"
	"github.com/kanak0604/market-campaigns/internal/infra/mail"
	"github.com/kanak0604/market-campaigns/internal/infra/queue"
	"github.com/kanak0604/market-campaigns/internal/infra/worker"
	"github.com/kanak0604/market-campaigns/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	campaignRepo := database.NewCampaignRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// 3. Workers (boas-vindas via fila + correção periódica de métricas)
	welcomeWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go welcomeWorker.Start(queue.QueueName)

	refreshWorker := worker.NewMetricsRefreshWorker(db)
	go refreshWorker.Start(context.Background())

	// 4. UseCases
	classifier := usecase.NewSegmentClassifier(campaignRepo)
	metricsUC := usecase.NewRecomputeCampaignMetricsUseCase(leadRepo, campaignRepo)
	addLeadUC := usecase.NewAddLeadUseCase(leadRepo, campaignRepo, classifier, metricsUC, producer)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, classifier, metricsUC)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo, metricsUC)
	bulkUC := usecase.NewBulkReconcileUseCase(leadRepo, classifier, metricsUC)
	searchUC := usecase.NewSearchLeadsUseCase(leadRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, addLeadUC, updateLeadUC, deleteLeadUC, bulkUC, searchUC)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, metricsUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(custommw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:4200", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Route("/api/leads", func(r chi.Router) {
		r.Get("/", leadHandler.GetAll)
		r.Post("/", leadHandler.Add)
		r.Post("/bulk", leadHandler.BulkUpload)
		r.Post("/search", leadHandler.Search)
		r.Get("/{id}", leadHandler.GetByID)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
	})

	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.GetAll)
		r.Post("/", campaignHandler.Add)
		r.Get("/filters", campaignHandler.Filters)
		r.Get("/averages", campaignHandler.Averages)
		r.Get("/{id}", campaignHandler.GetByID)
		r.Put("/{id}", campaignHandler.Update)
		r.Delete("/{id}", campaignHandler.Delete)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 Server MarketCampaigns rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
