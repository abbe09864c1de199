package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

// ExtractionResult is the structured payload the analysis prompt asks the
// model to produce.
type ExtractionResult struct {
	Entities      []models.Entity       `json:"entities"`
	Relationships []models.Relationship `json:"relationships"`
}

// ParseExtraction locates the brace-delimited JSON object in the raw model
// reply (greedy, first '{' to last '}') and decodes it strictly into an
// ExtractionResult. Anything that fails to decode or validate returns
// ErrInvalidOutput; the caller falls back to the prior schema rather than
// processing a partial extraction.
func ParseExtraction(raw string) (ExtractionResult, error) {
	var result ExtractionResult

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end <= start {
		return result, fmt.Errorf("%w: no JSON object found in reply", ErrInvalidOutput)
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if err := validateExtraction(result); err != nil {
		return ExtractionResult{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return result, nil
}

func validateExtraction(r ExtractionResult) error {
	for i, entity := range r.Entities {
		if strings.TrimSpace(entity.Name) == "" {
			return fmt.Errorf("entity %d has no name", i)
		}
		for j, attr := range entity.Attributes {
			if strings.TrimSpace(attr.Name) == "" {
				return fmt.Errorf("entity %q attribute %d has no name", entity.Name, j)
			}
		}
	}
	for i, rel := range r.Relationships {
		if strings.TrimSpace(rel.From) == "" || strings.TrimSpace(rel.To) == "" {
			return fmt.Errorf("relationship %d is missing a side", i)
		}
	}
	return nil
}
