package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/llm"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/repositories"
	"github.com/Mustez-hero/KeyMap-DB-AI/internal/schema"
)

type stubClient struct {
	reply string
	err   error
	calls int
}

func (c *stubClient) Generate(_ context.Context, prompt string, _ llm.GenerateParams) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

type stubStore struct {
	projects map[uuid.UUID]*models.Project
	updates  []repositories.ProjectUpdate
}

func newStubStore(projects ...*models.Project) *stubStore {
	s := &stubStore{projects: map[uuid.UUID]*models.Project{}}
	for _, p := range projects {
		s.projects[p.ID] = p
	}
	return s
}

func (s *stubStore) Create(_ context.Context, project *models.Project) error {
	project.Prepare()
	s.projects[project.ID] = project
	return nil
}

func (s *stubStore) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects[id], nil
}

func (s *stubStore) List(_ context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *stubStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *stubStore) Update(_ context.Context, id uuid.UUID, update repositories.ProjectUpdate) error {
	project, ok := s.projects[id]
	if !ok {
		return errors.New("project not found")
	}
	s.updates = append(s.updates, update)
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.Schema != nil {
		project.Schema = *update.Schema
	}
	if update.Messages != nil {
		project.Messages = *update.Messages
	}
	if update.PendingResponse != nil {
		project.PendingResponse = *update.PendingResponse
	}
	return nil
}

func userTurn(content string) []models.Message {
	return []models.Message{{Role: models.RoleUser, Content: content}}
}

const authorBookReply = `{"entities":[` +
	`{"name":"Author","attributes":[{"name":"id","type":"uuid"},{"name":"name","type":"varchar"}]},` +
	`{"name":"Book","attributes":[{"name":"id","type":"uuid"}]}],` +
	`"relationships":[{"from":"Author","to":"Book","type":"one-to-many"}]}`

func TestHandleTurn_GreetingMakesNoModelCall(t *testing.T) {
	client := &stubClient{}
	svc := NewChatService(client, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{Messages: userTurn("hello")})

	require.NoError(t, err)
	assert.Equal(t, schema.GreetingReply, result.Message)
	assert.Nil(t, result.Schema)
	assert.Zero(t, client.calls)
}

func TestHandleTurn_InitialGreetingCarriesDefaults(t *testing.T) {
	svc := NewChatService(&stubClient{}, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:  userTurn("hi there"),
		IsInitial: true,
	})

	require.NoError(t, err)
	assert.Equal(t, schema.DefaultProjectName, result.ProjectName)
	require.NotNil(t, result.Schema)
	assert.True(t, result.Schema.IsEmpty())
}

func TestHandleTurn_GratitudeAndUnrelatedCannedReplies(t *testing.T) {
	client := &stubClient{}
	svc := NewChatService(client, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{Messages: userTurn("thanks so much!")})
	require.NoError(t, err)
	assert.Equal(t, schema.GratitudeReply, result.Message)

	result, err = svc.HandleTurn(context.Background(), TurnRequest{Messages: userTurn("sing me a song")})
	require.NoError(t, err)
	assert.Equal(t, schema.UnrelatedReply, result.Message)

	assert.Zero(t, client.calls)
}

func TestHandleTurn_SchemaQuestionCannedReply(t *testing.T) {
	client := &stubClient{}
	svc := NewChatService(client, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{Messages: userTurn("what is a schema?")})

	require.NoError(t, err)
	assert.Equal(t, schema.SchemaDefinitionReply, result.Message)
	assert.Zero(t, client.calls)
}

func TestHandleTurn_GeneralQuestionAnswersProse(t *testing.T) {
	client := &stubClient{reply: "Indexes speed up lookups at the cost of extra writes."}
	svc := NewChatService(client, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{Messages: userTurn("why use indexes?")})

	require.NoError(t, err)
	assert.Equal(t, "Indexes speed up lookups at the cost of extra writes.", result.Message)
	assert.Nil(t, result.Schema)
	assert.Equal(t, 1, client.calls)
}

func TestHandleTurn_SchemaRequestBuildsSchema(t *testing.T) {
	client := &stubClient{reply: authorBookReply}
	svc := NewChatService(client, newStubStore())

	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages: userTurn("I need a database for authors and their books"),
	})

	require.NoError(t, err)
	require.NotNil(t, result.Schema)
	require.Len(t, result.Schema.Tables, 2)

	book := result.Schema.Tables[1]
	assert.Equal(t, "book", book.Name)
	require.Len(t, book.Columns, 2)
	assert.Equal(t, "author_id", book.Columns[1].Name)
	assert.True(t, book.Columns[1].IsForeign)

	assert.Equal(t, "author & book System", result.ProjectName)
	assert.Contains(t, result.Message, "• author (id, name)")
}

func TestHandleTurn_SchemaAccumulatesAcrossTurns(t *testing.T) {
	client := &stubClient{reply: authorBookReply}
	svc := NewChatService(client, newStubStore())

	first, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages: userTurn("a database for authors and books"),
	})
	require.NoError(t, err)

	client.reply = `{"entities":[{"name":"Review","attributes":[{"name":"id","type":"uuid"},{"name":"rating","type":"integer"}]}],"relationships":[{"from":"Book","to":"Review","type":"one-to-many"}]}`

	second, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:       userTurn("also track reviews for each book"),
		ExistingSchema: first.Schema,
	})
	require.NoError(t, err)

	require.Len(t, second.Schema.Tables, 3)
	assert.Equal(t, "author", second.Schema.Tables[0].Name)
	assert.Equal(t, "book", second.Schema.Tables[1].Name)
	assert.Equal(t, "review", second.Schema.Tables[2].Name)

	review := second.Schema.Tables[2]
	require.Len(t, review.Columns, 3)
	assert.Equal(t, "book_id", review.Columns[2].Name)

	// Naming only happens on the first schema-producing turn.
	assert.Empty(t, second.ProjectName)
}

func TestHandleTurn_ParseFailureDegradesSilently(t *testing.T) {
	client := &stubClient{reply: "I am not able to produce JSON today."}
	svc := NewChatService(client, newStubStore())

	prior := models.Schema{Tables: []models.Table{
		{Name: "author", Columns: []models.Column{{Name: "id", Type: "uuid", IsPrimary: true}}},
	}}

	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:       userTurn("add a books table"),
		ExistingSchema: &prior,
	})

	require.NoError(t, err)
	assert.Equal(t, schema.ParseFailureReply, result.Message)
	require.NotNil(t, result.Schema)
	assert.Equal(t, prior, *result.Schema, "prior schema must be returned unchanged")
}

func TestHandleTurn_CallFailureSurfacesError(t *testing.T) {
	client := &stubClient{err: llm.ErrUnavailable}
	svc := NewChatService(client, newStubStore())

	prior := models.Schema{Tables: []models.Table{{Name: "author"}}}
	_, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:       userTurn("add a books table"),
		ExistingSchema: &prior,
	})

	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Len(t, prior.Tables, 1, "accumulated schema is never touched on failure")
}

func TestHandleTurn_InvalidRequests(t *testing.T) {
	svc := NewChatService(&stubClient{}, newStubStore())

	_, err := svc.HandleTurn(context.Background(), TurnRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.HandleTurn(context.Background(), TurnRequest{
		Messages: []models.Message{{Role: "system", Content: "x"}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.HandleTurn(context.Background(), TurnRequest{
		Messages: []models.Message{{Role: models.RoleUser, Content: ""}},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.HandleTurn(context.Background(), TurnRequest{
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleAssistant, Content: "hello"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestHandleTurn_RecordsTurnsAndTogglesPending(t *testing.T) {
	project := &models.Project{ID: uuid.New(), Name: "New Database Schema"}
	store := newStubStore(project)
	client := &stubClient{reply: authorBookReply}
	svc := NewChatService(client, store)

	messages := userTurn("a database for authors and books")
	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:  messages,
		ProjectID: project.ID.String(),
	})
	require.NoError(t, err)

	// First update records the user turn with the pending flag raised.
	require.NotEmpty(t, store.updates)
	first := store.updates[0]
	require.NotNil(t, first.PendingResponse)
	assert.True(t, *first.PendingResponse)

	// Final state: pending cleared, conversation holds the assistant turn,
	// schema persisted, placeholder name replaced.
	assert.False(t, project.PendingResponse)
	require.Len(t, project.Messages, 2)
	assert.Equal(t, models.RoleAssistant, project.Messages[1].Role)

	var payload struct {
		Message string        `json:"message"`
		Schema  models.Schema `json:"schema"`
	}
	require.NoError(t, json.Unmarshal([]byte(project.Messages[1].Content), &payload))
	assert.Equal(t, result.Message, payload.Message)
	assert.Len(t, payload.Schema.Tables, 2)

	assert.Len(t, project.Schema.Tables, 2)
	assert.Equal(t, "author & book System", project.Name)
	assert.Equal(t, "author & book System", result.ProjectName)
}

func TestHandleTurn_UserChosenNameIsNeverOverwritten(t *testing.T) {
	project := &models.Project{ID: uuid.New(), Name: "Bookshop Backend"}
	store := newStubStore(project)
	svc := NewChatService(&stubClient{reply: authorBookReply}, store)

	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:  userTurn("a database for authors and books"),
		ProjectID: project.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bookshop Backend", project.Name)
	assert.Empty(t, result.ProjectName)
}

func TestHandleTurn_UsesStoredSchemaWhenNoneProvided(t *testing.T) {
	project := &models.Project{
		ID:   uuid.New(),
		Name: "author Database",
		Schema: models.Schema{Tables: []models.Table{
			{Name: "author", Columns: []models.Column{{Name: "id", Type: "uuid", IsPrimary: true}}},
		}},
	}
	store := newStubStore(project)
	client := &stubClient{reply: `{"entities":[{"name":"Book","attributes":[{"name":"id","type":"uuid"}]}],"relationships":[]}`}
	svc := NewChatService(client, store)

	result, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:  userTurn("add a book table"),
		ProjectID: project.ID.String(),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Schema)
	require.Len(t, result.Schema.Tables, 2)
	assert.Equal(t, "author", result.Schema.Tables[0].Name)
	assert.Equal(t, "book", result.Schema.Tables[1].Name)
}

func TestHandleTurn_ClearsPendingOnFailure(t *testing.T) {
	project := &models.Project{ID: uuid.New(), Name: "New Database Schema"}
	store := newStubStore(project)
	svc := NewChatService(&stubClient{err: llm.ErrUnavailable}, store)

	_, err := svc.HandleTurn(context.Background(), TurnRequest{
		Messages:  userTurn("a database for authors"),
		ProjectID: project.ID.String(),
	})

	require.Error(t, err)
	assert.False(t, project.PendingResponse)
}
