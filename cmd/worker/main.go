package main

import (
	"net/http"
	"transcript_api/internal/config"
	"transcript_api/internal/db"
	"transcript_api/internal/observability"
	"transcript_api/internal/queue"
	"transcript_api/internal/transcript"
	"transcript_api/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()

	database := db.Init(&cfg.DB)
	defer func() {
		if err := database.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close database connection")
		}
	}()

	conn := queue.SetupRabbitMQ(&cfg.RabbitMQ)
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.Fatalf("Failed to close RabbitMQ connection")
		}
	}()

	repo := transcript.NewTranscriptRepository()

	consumerChannel, err := queue.CreateChannel(conn)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create RabbitMQ channel")
	}

	if _, err := queue.DeclareQueue(consumerChannel, queue.TranscriptEventsQueue); err != nil {
		logrus.WithError(err).Fatal("Failed to declare RabbitMQ queue")
	}

	if err := consumerChannel.Close(); err != nil {
		logrus.WithError(err).Fatal("Failed to close RabbitMQ channel")
	}

	// Initialize Prometheus metrics
	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	// Start metrics HTTP server for Prometheus scraping
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logrus.Info("Worker metrics server started on :8088")
		if err := http.ListenAndServe(":8088", nil); err != nil {
			logrus.WithError(err).Fatal("Failed to start metrics server")
		}
	}()

	for i := 1; i <= 3; i++ {
		go worker.StartWorker(conn, database, repo, i)
	}

	select {}
}
