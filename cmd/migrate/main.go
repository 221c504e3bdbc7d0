package main

import (
	"log"
	"os"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/model"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions first; AutoMigrate cannot create them.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Running AutoMigrate for 9 tables...")

	models := []interface{}{
		&model.User{},
		&model.UserSettings{},
		&model.Conversation{},
		&model.Note{},
		&model.Task{},
		&model.LearningPlan{},
		&model.LearningResource{},
		&model.DocumentChunk{},
		&model.TelegramMessage{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// The ivfflat index needs rows to train on, so errors here are expected
	// on an empty database and the scan just stays sequential until re-run.
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_document_chunks_embedding
		ON document_chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`
	if err := db.Exec(indexSQL).Error; err != nil {
		color.Yellow("Warn: failed to create vector index: %v", err)
	}

	color.Green("Success: database migration completed via GORM.")
}
