package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/config"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/db"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
)

func main() {
	log.Println("Overdue Payments Job - Starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		log.Println("STORAGE_DRIVER is not postgres, nothing to scan. Exiting.")
		os.Exit(0)
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	var publisher messaging.PublisherInterface
	if cfg.RabbitMQEnabled {
		rabbit, err := messaging.NewPublisher()
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, overdue events will not be published: %v", err)
		} else {
			defer rabbit.Close()
			publisher = rabbit
		}
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics disabled: %v", err)
	}

	service := payment.NewService(payment.NewPostgresRepository(database), publisher, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := service.MarkOverdue(ctx)
	if err != nil {
		log.Fatalf("Overdue scan failed: %v", err)
	}

	if count == 0 {
		log.Println("No unpaid invoice past its due date. Exiting.")
		return
	}

	log.Printf("✓ Overdue scan completed: %d payments marked en_retard", count)
	log.Println("Overdue Payments Job - Finished")
}
