// Command seed applies the schema and provisions the default office
// layout: one admin, 80 employees split evenly between the two
// rotation batches, 40 designated seats (20 per batch) and 10
// floating seats. Safe to re-run; existing rows are left alone.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/office-seat-rotation/internal/config"
	"github.com/iliyamo/office-seat-rotation/internal/database"
	"github.com/iliyamo/office-seat-rotation/internal/utils"
)

const (
	employeesPerBatch = 40
	designatedSeats   = 40 // seats 1..40, half per batch
	floatingSeats     = 10 // seats 41..50
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := applySchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := seedEmployees(ctx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("employees: %v", err)
	}
	if err := seedSeats(ctx, db); err != nil {
		log.Fatalf("seats: %v", err)
	}
	log.Println("seed complete")
}

// applySchema runs migrations/schema.sql statement by statement. The
// file uses IF NOT EXISTS throughout, so this is idempotent.
func applySchema(ctx context.Context, db *sql.DB) error {
	raw, err := os.ReadFile("migrations/schema.sql")
	if err != nil {
		return err
	}
	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i > 0 {
		return s[:i]
	}
	return s
}

// seedEmployees inserts the admin plus EMP001..EMP080. Codes 1-40 go
// to batch 1, 41-80 to batch 2. Default password matches the code so
// a demo environment is usable out of the box.
func seedEmployees(ctx context.Context, db *sql.DB, cost int) error {
	insert := func(code, name, password string, batch int, role string) error {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			"INSERT IGNORE INTO employees (employee_code, name, password_hash, batch, role) VALUES (?,?,?,?,?)",
			code, name, hash, batch, role)
		return err
	}

	if err := insert("ADMIN001", "Administrator", "ADMIN001", 0, "ADMIN"); err != nil {
		return err
	}
	for i := 1; i <= 2*employeesPerBatch; i++ {
		batch := 1
		if i > employeesPerBatch {
			batch = 2
		}
		code := fmt.Sprintf("EMP%03d", i)
		if err := insert(code, fmt.Sprintf("Employee %03d", i), code, batch, "EMPLOYEE"); err != nil {
			return err
		}
	}
	return nil
}

// seedSeats inserts the seat layout: designated seats get an assigned
// batch (first half batch 1, second half batch 2), floating seats
// have none.
func seedSeats(ctx context.Context, db *sql.DB) error {
	for n := 1; n <= designatedSeats; n++ {
		batch := 1
		if n > designatedSeats/2 {
			batch = 2
		}
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO seats (seat_number, seat_type, assigned_batch) VALUES (?, 'DESIGNATED', ?)",
			n, batch); err != nil {
			return err
		}
	}
	for n := designatedSeats + 1; n <= designatedSeats+floatingSeats; n++ {
		if _, err := db.ExecContext(ctx,
			"INSERT IGNORE INTO seats (seat_number, seat_type, assigned_batch) VALUES (?, 'FLOATING', NULL)",
			n); err != nil {
			return err
		}
	}
	return nil
}
