package main

import (
	"log"
	"os"

	"lendhub-be/internal/model"
	"lendhub-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	color.Cyan("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('user', 'admin', 'superadmin'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN CREATE TYPE user_status AS ENUM ('pending', 'active', 'suspended'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'withdrawal_status') THEN CREATE TYPE withdrawal_status AS ENUM ('pending', 'review', 'approved', 'rejected'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	color.Cyan("Step 2: Running AutoMigrate for 6 Tables...")

	models := []interface{}{
		&model.User{},
		&model.Loan{},
		&model.Withdrawal{},
		&model.ActivationProfile{},
		&model.AuditEntry{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// 5. Post-Migration: updated_at trigger for optimistic-concurrency tokens
	color.Cyan("Step 3: Creating Triggers...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END $$;`,

		`DROP TRIGGER IF EXISTS set_loans_updated_at ON loans;
		 CREATE TRIGGER set_loans_updated_at BEFORE UPDATE ON loans
		 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,

		`DROP TRIGGER IF EXISTS set_withdrawals_updated_at ON withdrawals;
		 CREATE TRIGGER set_withdrawals_updated_at BEFORE UPDATE ON withdrawals
		 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,

		`DROP TRIGGER IF EXISTS set_profiles_updated_at ON user_activation_profiles;
		 CREATE TRIGGER set_profiles_updated_at BEFORE UPDATE ON user_activation_profiles
		 FOR EACH ROW EXECUTE FUNCTION set_current_timestamp_updated_at();`,

		// admin_modification_log is append-only: no UPDATE/DELETE beyond the
		// notification back-reference set by the pipeline itself
		`REVOKE DELETE ON admin_modification_log FROM PUBLIC;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute post-migration SQL: %v. Continuing...", err)
		}
	}

	color.Green("✅ Migration completed successfully")
}
