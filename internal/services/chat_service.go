package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/llm"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/repositories"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/schema"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/utils"
)

// ProjectStore is the persistence boundary the project and chat services
// write through. *repositories.ProjectRepository satisfies it.
type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id uuid.UUID, update repositories.ProjectUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChatService runs one conversation turn as a sequential pipeline:
// classify, maybe extract, build, resolve, merge, name, compose. All working
// data is local to the call; the store is the only place state escapes.
type ChatService struct {
	client llm.Client
	store  ProjectStore
}

func NewChatService(client llm.Client, store ProjectStore) *ChatService {
	return &ChatService{client: client, store: store}
}

type TurnRequest struct {
	Messages       []models.Message `json:"messages"`
	IsInitial      bool             `json:"isInitial"`
	ExistingSchema *models.Schema   `json:"existingSchema"`
	ProjectID      string           `json:"projectId"`
}

// TurnResult is the externally observable payload of a chat turn. Schema is
// nil for turns that produced none (canned replies, prose answers).
type TurnResult struct {
	Message     string         `json:"message"`
	Schema      *models.Schema `json:"schema,omitempty"`
	ProjectName string         `json:"projectName,omitempty"`
}

// HandleTurn processes the latest user message. Failures never corrupt the
// accumulated schema: extraction parse failures degrade to the prior schema
// with an apologetic message, and call failures abort before any merge.
func (s *ChatService) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if err := validateTurn(req.Messages); err != nil {
		return nil, err
	}

	userInput := strings.TrimSpace(req.Messages[len(req.Messages)-1].Content)

	project := s.loadProject(ctx, req.ProjectID)

	prior := models.Schema{}
	if req.ExistingSchema != nil {
		prior = req.ExistingSchema.Clone()
	} else if project != nil {
		prior = project.Schema.Clone()
	}

	// Record the user turn before calling out, so a polling client sees
	// the in-flight state.
	if project != nil {
		s.recordUserTurn(ctx, project, req.Messages)
	}

	result, err := s.respond(ctx, userInput, prior, req.IsInitial)
	if err != nil {
		if project != nil {
			s.clearPending(ctx, project.ID)
		}
		return nil, err
	}

	if project != nil {
		s.maybeRename(ctx, project, result)
		s.recordAssistantTurn(ctx, project, req.Messages, result)
	}

	return result, nil
}

func (s *ChatService) respond(ctx context.Context, userInput string, prior models.Schema, isInitial bool) (*TurnResult, error) {
	switch intent := schema.Classify(userInput); intent {
	case schema.IntentGreeting:
		result := &TurnResult{Message: schema.GreetingReply}
		if isInitial {
			result.ProjectName = schema.DefaultProjectName
			result.Schema = &prior
		}
		return result, nil

	case schema.IntentGratitude:
		return &TurnResult{Message: schema.GratitudeReply}, nil

	case schema.IntentSchemaQuestion:
		return &TurnResult{Message: schema.SchemaDefinitionReply}, nil

	case schema.IntentGeneralQuestion:
		return s.answerQuestion(ctx, userInput)

	case schema.IntentSchemaRequest:
		return s.generateSchema(ctx, userInput, prior)

	case schema.IntentUnrelated:
		return &TurnResult{Message: schema.UnrelatedReply}, nil

	default:
		return nil, fmt.Errorf("unhandled intent %v", intent)
	}
}

// answerQuestion produces a prose answer to a general database question.
// No schema is generated from this path.
func (s *ChatService) answerQuestion(ctx context.Context, userInput string) (*TurnResult, error) {
	prompt := llm.BuildAnswerPrompt(userInput)
	raw, err := s.client.Generate(ctx, prompt, llm.AnswerParams)
	if err != nil {
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}

	answer := llm.CleanReply(raw, prompt)
	if answer == "" {
		answer = schema.EmptyAnswerReply
	}
	return &TurnResult{Message: answer}, nil
}

// generateSchema runs the extraction pipeline and merges the outcome into
// the prior schema.
func (s *ChatService) generateSchema(ctx context.Context, userInput string, prior models.Schema) (*TurnResult, error) {
	prompt := llm.BuildAnalysisPrompt(userInput)
	raw, err := s.client.Generate(ctx, prompt, llm.AnalysisParams)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze request: %w", err)
	}

	extraction, err := llm.ParseExtraction(llm.CleanReply(raw, prompt))
	if err != nil {
		if !errors.Is(err, llm.ErrInvalidOutput) {
			return nil, err
		}
		// Silent degrade: the prior schema is returned unchanged.
		log.Printf("extraction parse failed: %v", err)
		return &TurnResult{Message: schema.ParseFailureReply, Schema: &prior}, nil
	}

	merged := prior
	if len(extraction.Entities) > 0 {
		built := schema.BuildTables(extraction.Entities)
		working := append(models.CloneTables(prior.Tables), built...)
		resolved := schema.ResolveRelationships(working, extraction.Relationships)
		merged = schema.Merge(prior, models.Schema{Tables: resolved})
	}

	result := &TurnResult{
		Message: schema.ComposeSummary(merged),
		Schema:  &merged,
	}
	if prior.IsEmpty() {
		result.ProjectName = schema.ProjectName(merged)
	}
	return result, nil
}

func validateTurn(messages []models.Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: no messages", ErrInvalidRequest)
	}
	for i, msg := range messages {
		if msg.Role != models.RoleUser && msg.Role != models.RoleAssistant {
			return fmt.Errorf("%w: message %d has invalid role %q", ErrInvalidRequest, i, msg.Role)
		}
		if msg.Content == "" {
			return fmt.Errorf("%w: message %d has no content", ErrInvalidRequest, i)
		}
	}
	if messages[len(messages)-1].Role != models.RoleUser {
		return fmt.Errorf("%w: last message must be from the user", ErrInvalidRequest)
	}
	return nil
}

func (s *ChatService) loadProject(ctx context.Context, projectID string) *models.Project {
	if projectID == "" {
		return nil
	}
	id, err := utils.ParseUUID(projectID)
	if err != nil {
		log.Printf("Warning: ignoring invalid project ID %q: %v", projectID, err)
		return nil
	}
	project, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Printf("Warning: failed to load project %s: %v", id, err)
		return nil
	}
	return project
}

func (s *ChatService) recordUserTurn(ctx context.Context, project *models.Project, messages []models.Message) {
	pending := true
	update := repositories.ProjectUpdate{Messages: &messages, PendingResponse: &pending}
	if err := s.store.Update(ctx, project.ID, update); err != nil {
		log.Printf("Warning: failed to record user turn for project %s: %v", project.ID, err)
	}
}

func (s *ChatService) recordAssistantTurn(ctx context.Context, project *models.Project, messages []models.Message, result *TurnResult) {
	resultSchema := models.Schema{}
	if result.Schema != nil {
		resultSchema = *result.Schema
	}

	content, err := json.Marshal(map[string]interface{}{
		"message": result.Message,
		"schema":  resultSchema,
	})
	if err != nil {
		log.Printf("Warning: failed to encode assistant turn for project %s: %v", project.ID, err)
		return
	}

	conversation := append(append([]models.Message{}, messages...), models.Message{
		Role:    models.RoleAssistant,
		Content: string(content),
	})

	pending := false
	update := repositories.ProjectUpdate{
		Messages:        &conversation,
		PendingResponse: &pending,
	}
	if result.Schema != nil {
		update.Schema = result.Schema
	}

	if err := s.store.Update(ctx, project.ID, update); err != nil {
		log.Printf("Warning: failed to record assistant turn for project %s: %v", project.ID, err)
	}
}

// clearPending resets the in-flight flag after a failed turn so a polling
// client does not wait forever on a reply that will never land.
func (s *ChatService) clearPending(ctx context.Context, id uuid.UUID) {
	pending := false
	if err := s.store.Update(ctx, id, repositories.ProjectUpdate{PendingResponse: &pending}); err != nil {
		log.Printf("Warning: failed to clear pending flag for project %s: %v", id, err)
	}
}

// maybeRename replaces a placeholder project name with one derived from the
// merged schema. User-chosen names are never overwritten, and a refused or
// failed rename must not be advertised in the turn payload.
func (s *ChatService) maybeRename(ctx context.Context, project *models.Project, result *TurnResult) {
	if result.Schema == nil || result.Schema.IsEmpty() {
		return
	}
	if !IsDefaultName(project.Name) {
		result.ProjectName = ""
		return
	}

	name := schema.ProjectName(*result.Schema)
	if name == project.Name {
		return
	}

	update := repositories.ProjectUpdate{Name: &name}
	if err := s.store.Update(ctx, project.ID, update); err != nil {
		log.Printf("Warning: failed to rename project %s: %v", project.ID, err)
		result.ProjectName = ""
		return
	}
	result.ProjectName = name
}
