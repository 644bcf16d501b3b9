package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"userhub/internal/adapters/postgres"
	"userhub/internal/domain"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := postgres.OpenSQL(*dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedAdmin(db)
}

func seedAdmin(db *sql.DB) {
	email := "admin@userhub.local"
	password := "password"

	if envEmail := os.Getenv("DB_ADMIN_EMAIL"); envEmail != "" {
		email = envEmail
	}

	if envPass := os.Getenv("DB_ADMIN_PASSWORD"); envPass != "" {
		password = envPass
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	query := `
		INSERT INTO users (name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (email) WHERE deleted_at IS NULL
		DO UPDATE SET password = excluded.password, role = excluded.role, updated_at = excluded.updated_at;
	`

	if _, err := db.Exec(query, "Admin", email, string(hashed), domain.RoleAdmin, time.Now().UTC()); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	fmt.Printf("User seeded\n   User: %s\n   Pass: %s\n", email, password)
}
