package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createProjectsTable,
		createProjectsUpdatedAtIndex,
	}

	for i, migration := range migrations {
		log.Printf("Running migration %d/%d", i+1, len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

// Projects are stored document-style: the cumulative schema and the
// conversation are jsonb columns owned wholly by the application.
const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  schema JSONB NOT NULL DEFAULT '{"tables": []}'::jsonb,
  messages JSONB NOT NULL DEFAULT '[]'::jsonb,
  pending_response BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const createProjectsUpdatedAtIndex = `
CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects (updated_at DESC);
`
