package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn half. Assistant messages carry a JSON
// payload ({"message": ..., "schema": ...}) as their content so the client
// can re-render past schema states.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Project is the persisted aggregate: the conversation so far plus the
// cumulative schema. PendingResponse is true from when a user turn is
// recorded until the paired assistant turn lands, so a polling client can
// detect completion. It is advisory only, not a lock.
type Project struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Schema          Schema    `json:"schema"`
	Messages        []Message `json:"messages"`
	PendingResponse bool      `json:"pending_response"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Project) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Name == "" {
		p.Name = "New Database Schema"
	}
}
