package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/internal/users"
	"github.com/shopmallhq/shopmall-backend/pkg/config"
	"github.com/shopmallhq/shopmall-backend/pkg/db"
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	"github.com/shopmallhq/shopmall-backend/pkg/logger"
	"github.com/shopmallhq/shopmall-backend/pkg/security"
)

// seed-admin provisions the console account. Safe to run repeatedly: an
// existing account with the configured email is left untouched.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed-admin"})

	_ = godotenv.Load()

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SHOPMALL_ADMIN_EMAIL")))
	password := os.Getenv("SHOPMALL_ADMIN_PASSWORD")
	username := strings.TrimSpace(os.Getenv("SHOPMALL_ADMIN_USERNAME"))
	if username == "" {
		username = "admin"
	}
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SHOPMALL_ADMIN_EMAIL and SHOPMALL_ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	repo := users.NewRepository(dbClient.DB())

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		ctx = logg.WithField(ctx, "user_id", existing.ID.String())
		logg.Info(ctx, "admin account already present, nothing to do")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to look up admin account", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash admin password", err)
		os.Exit(1)
	}

	role := models.SystemRoleAdmin
	created, err := repo.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		Username:     username,
		SystemRole:   &role,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin account", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "user_id", created.ID.String())
	logg.Info(ctx, "admin account created")
}
