package main

import (
	"log"
	"os"

	"study-tutor-be/internal/model"
	"study-tutor-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var setupSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE EXTENSION IF NOT EXISTS vector`,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] No .env file found, relying on environment")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	for _, stmt := range setupSQL {
		if err := db.Exec(stmt).Error; err != nil {
			color.Red("Failed to run setup statement %q: %v", stmt, err)
			os.Exit(1)
		}
	}
	color.Green("Extensions ready (pgcrypto, uuid-ossp, vector)")

	err = db.AutoMigrate(
		&model.Term{},
		&model.Subject{},
		&model.Resource{},
		&model.ResourceEmbedding{},
		&model.Note{},
	)
	if err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}
	color.Green("Migration complete: terms, subjects, resources, resource_embeddings, notes")

	// ivfflat needs data to build meaningful lists; keep the index creation
	// best-effort so a fresh database still migrates cleanly.
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_resource_embeddings_vector
		ON resource_embeddings USING ivfflat (embedding_value vector_cosine_ops) WITH (lists = 100)`
	if err := db.Exec(indexSQL).Error; err != nil {
		color.Yellow("Skipped vector index creation: %v", err)
	} else {
		color.Green("Vector index ready")
	}
}
