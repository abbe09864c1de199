package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/repositories"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/schema"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/utils"
)

// defaultProjectNames are placeholders a user never chose; only projects
// still carrying one of these are eligible for automatic renaming.
var defaultProjectNames = []string{
	"New Database Schema",
	"Database Schema",
	schema.DefaultProjectName,
}

type ProjectService struct {
	projectRepo ProjectStore
}

func NewProjectService(projectRepo ProjectStore) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

type CreateProjectRequest struct {
	Name            string           `json:"name"`
	Messages        []models.Message `json:"messages" binding:"required"`
	PendingResponse bool             `json:"pendingResponse"`
}

type UpdateProjectRequest struct {
	Name            *string           `json:"name"`
	Schema          *models.Schema    `json:"schema"`
	Messages        *[]models.Message `json:"messages"`
	PendingResponse *bool             `json:"pendingResponse"`
}

// CreateProject stores a new project. Only the latest user message and
// latest assistant message are kept; older turns are pruned so the document
// stays one exchange deep.
func (s *ProjectService) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		Name:            req.Name,
		Messages:        trimToLatestExchange(req.Messages),
		PendingResponse: req.PendingResponse,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

// UpdateProject applies a partial update. The write is last-wins; two turns
// racing on the same project are not serialized. Only a missing row maps to
// ErrProjectNotFound; infrastructure failures surface unchanged.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID string, req UpdateProjectRequest) error {
	id, err := parseProjectID(projectID)
	if err != nil {
		return err
	}

	update := repositories.ProjectUpdate{
		Name:            req.Name,
		Schema:          req.Schema,
		Messages:        req.Messages,
		PendingResponse: req.PendingResponse,
	}
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	if err := s.projectRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID string) error {
	id, err := parseProjectID(projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func parseProjectID(projectID string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(projectID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid project ID %q", ErrInvalidRequest, projectID)
	}
	return id, nil
}

// IsDefaultName reports whether a project name is still a placeholder the
// namer may overwrite. A user-chosen name is never replaced.
func IsDefaultName(name string) bool {
	return utils.Contains(defaultProjectNames, name)
}

func trimToLatestExchange(messages []models.Message) []models.Message {
	var lastUser, lastAssistant *models.Message
	for i := range messages {
		switch messages[i].Role {
		case models.RoleUser:
			lastUser = &messages[i]
		case models.RoleAssistant:
			lastAssistant = &messages[i]
		}
	}

	trimmed := make([]models.Message, 0, 2)
	if lastUser != nil {
		trimmed = append(trimmed, *lastUser)
	}
	if lastAssistant != nil {
		trimmed = append(trimmed, *lastAssistant)
	}
	return trimmed
}
