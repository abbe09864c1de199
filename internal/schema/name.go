package schema

import (
	"fmt"
	"strings"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

// DefaultProjectName is the placeholder used until a schema exists to name
// the project after.
const DefaultProjectName = "Database Schema Project"

// auxiliarySubstrings mark log/history/setting-like tables that make poor
// project names.
var auxiliarySubstrings = []string{"log", "history", "setting"}

// ProjectName derives a display name from the current table set. With three
// or more tables it prefers the first table that does not look like an
// auxiliary entity.
func ProjectName(s models.Schema) string {
	if s.IsEmpty() {
		return DefaultProjectName
	}

	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}

	switch len(names) {
	case 1:
		return fmt.Sprintf("%s Database", names[0])
	case 2:
		return fmt.Sprintf("%s & %s System", names[0], names[1])
	}

	for _, name := range names {
		if !containsAny(strings.ToLower(name), auxiliarySubstrings) {
			return fmt.Sprintf("%s Management System", name)
		}
	}
	return fmt.Sprintf("%s Database System", names[0])
}
