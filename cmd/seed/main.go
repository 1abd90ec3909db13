// cmd/seed provisions the administrator account from config. Idempotent: an
// existing account is left untouched.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"guestpass/internal/config"
	"guestpass/internal/domain"
	"guestpass/internal/domain/model"
	pg "guestpass/internal/infra/db/postgres"
	"guestpass/internal/usecase"
)

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		log.Fatal("admin.username and admin.password are required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	admins := pg.NewAdminAccountRepo(pool)
	if existing, err := admins.FindByUsername(ctx, nil, cfg.Admin.Username); err == nil {
		fmt.Printf("admin %q already present (created %s). No changes.\n",
			existing.Username, existing.CreatedAt.Format(time.RFC3339))
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	hash, err := usecase.HashPassword(cfg.Admin.Password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	admin := &model.AdminAccount{
		ID:           ulid.Make().String(),
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := admins.Create(ctx, nil, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("admin %q created.\n", admin.Username)
}
