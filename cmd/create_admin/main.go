// Command create_admin creates or promotes an admin account.
//
//	ADMIN_EMAIL=ops@example.com ADMIN_PASSWORD=... go run ./cmd/create_admin
package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/config"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	mongorepo "github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories/mongodb"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	mongoURI := config.EnvOr("", "MONGODB_URI")
	email := strings.ToLower(strings.TrimSpace(config.EnvOr("", "ADMIN_EMAIL")))
	password := config.EnvOr("", "ADMIN_PASSWORD")
	if mongoURI == "" || email == "" || len(password) < 8 {
		log.Fatal("MONGODB_URI, ADMIN_EMAIL and ADMIN_PASSWORD (8+ characters) are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, mongoURI, config.EnvOr("whatsapp_campaigns", "MONGODB_DATABASE", "MONGODB_DB"), 10*time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := mongorepo.NewUserRepository(client.Database())
	now := time.Now()

	user, err := users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{
			FirstName:       config.EnvOr("Admin", "ADMIN_FIRST_NAME"),
			LastName:        config.EnvOr("User", "ADMIN_LAST_NAME"),
			Email:           email,
			Password:        string(hash),
			Role:            models.RoleAdmin,
			Status:          models.UserStatusActive,
			IsEmailVerified: true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin %s (%s)", email, user.ID.Hex())
	case err != nil:
		log.Fatalf("Failed to look up %s: %v", email, err)
	default:
		user.Password = string(hash)
		user.Role = models.RoleAdmin
		user.Status = models.UserStatusActive
		user.IsEmailVerified = true
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			log.Fatalf("Failed to update admin: %v", err)
		}
		log.Printf("Promoted %s to admin", email)
	}
}
