package schema

import (
	"fmt"
	"strings"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

// Canned replies for turns that never reach the extraction collaborator.
const (
	GreetingReply = "Hello! I'm your database assistant. What kind of database schema do you need help with?"

	GratitudeReply = "You're welcome! Need help with anything else?"

	SchemaDefinitionReply = "A database schema is the structure that defines how data is organized in a database. " +
		"It includes tables/collections, fields/columns, relationships, and constraints."

	UnrelatedReply = "I specialize in database schemas. Could you tell me more about what you're trying to build?"

	// ParseFailureReply is the silent-degrade message when the model reply
	// contained no usable extraction; the prior schema is returned unchanged.
	ParseFailureReply = "I had trouble understanding your request. Could you provide more specific details about " +
		"the database schema you need?"

	EmptyAnswerReply = "I couldn't generate a response. Could you rephrase your question?"
)

// ComposeSummary renders the working schema as the assistant's reply text,
// enumerating each table with its column names.
func ComposeSummary(s models.Schema) string {
	var sb strings.Builder
	sb.WriteString("I've created a schema based on your request. Here's what I came up with:\n\n")

	for _, table := range s.Tables {
		names := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			names[i] = col.Name
		}
		sb.WriteString(fmt.Sprintf("• %s (%s)\n", table.Name, strings.Join(names, ", ")))
	}

	sb.WriteString("\nWould you like to make any adjustments?")
	return sb.String()
}
