package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// ProjectUpdate is a partial update; nil fields are left untouched.
// updated_at is always bumped. Last write wins: there is no version check.
type ProjectUpdate struct {
	Name            *string
	Schema          *models.Schema
	Messages        *[]models.Message
	PendingResponse *bool
}

// IsEmpty reports whether the update carries no field at all.
func (u ProjectUpdate) IsEmpty() bool {
	return u.Name == nil && u.Schema == nil && u.Messages == nil && u.PendingResponse == nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.Prepare()

	schemaJSON, err := json.Marshal(project.Schema)
	if err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	messagesJSON, err := json.Marshal(messagesOrEmpty(project.Messages))
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, schema, messages, pending_response, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`

	now := time.Now()
	_, err = r.pool.Exec(ctx, query,
		project.ID,
		project.Name,
		schemaJSON,
		messagesJSON,
		project.PendingResponse,
		now,
	)
	if err != nil {
		return err
	}

	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `
		SELECT id, name, schema, messages, pending_response, created_at, updated_at
		FROM projects WHERE id = $1
	`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, name, schema, messages, pending_response, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, id uuid.UUID, update ProjectUpdate) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Schema != nil {
		schemaJSON, err := json.Marshal(*update.Schema)
		if err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}
		appendSet("schema", schemaJSON)
	}
	if update.Messages != nil {
		messagesJSON, err := json.Marshal(messagesOrEmpty(*update.Messages))
		if err != nil {
			return fmt.Errorf("failed to encode messages: %w", err)
		}
		appendSet("messages", messagesJSON)
	}
	if update.PendingResponse != nil {
		appendSet("pending_response", *update.PendingResponse)
	}

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $1", strings.Join(sets, ", "))
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		project      models.Project
		schemaJSON   []byte
		messagesJSON []byte
	)

	err := row.Scan(
		&project.ID,
		&project.Name,
		&schemaJSON,
		&messagesJSON,
		&project.PendingResponse,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(schemaJSON, &project.Schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema for project %s: %w", project.ID, err)
	}
	if err := json.Unmarshal(messagesJSON, &project.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages for project %s: %w", project.ID, err)
	}

	return &project, nil
}

func messagesOrEmpty(messages []models.Message) []models.Message {
	if messages == nil {
		return []models.Message{}
	}
	return messages
}
