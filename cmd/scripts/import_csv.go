// Command import_csv loads a vendor's contacts from a CSV file.
//
//	go run ./cmd/scripts <vendor-id> <file.csv>
package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/config"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/logger"
	mongorepo "github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories/mongodb"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := config.EnvOr("", "MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := config.EnvOr("whatsapp_campaigns", "MONGODB_DATABASE", "MONGODB_DB")
	timeout := config.EnvDuration("IMPORT_TIMEOUT", 5*time.Minute)

	if len(os.Args) < 3 {
		log.Fatal("usage: import_csv <vendor-id> <file.csv>")
	}
	vendorID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid vendor id %q: %v", os.Args[1], err)
	}

	zl, err := logger.New(config.EnvOr("info", "LOGLEVEL", "LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongodb.NewClient(ctx, mongoURI, dbName, 10*time.Second)
	if err != nil {
		zl.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	file, err := os.Open(os.Args[2])
	if err != nil {
		zl.Fatal("Failed to open CSV file", zap.Error(err))
	}
	defer file.Close()

	contacts := services.NewContactService(mongorepo.NewContactRepository(client.Database()), zl)
	result, err := contacts.ImportContactsCSV(ctx, vendorID, file)
	if err != nil {
		zl.Fatal("Failed to import contacts", zap.Error(err))
	}

	zl.Info("Contacts imported",
		zap.Int("created", len(result.Created)),
		zap.Int("duplicates", len(result.Duplicates)),
		zap.Int("errors", len(result.Errors)))
	if len(result.Errors) > 0 {
		zl.Warn("Rows skipped", zap.String("errors", strings.Join(result.Errors, "; ")))
	}
}
