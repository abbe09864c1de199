package schema

import (
	"regexp"
	"strings"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeName lowercases an entity or attribute name and joins whitespace
// runs with underscores, producing a SQL-friendly identifier.
func NormalizeName(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// BuildTables converts extracted entities into normalized table definitions,
// one table per entity, in extraction order. Every table gets an id column:
// if the entity carries one (case-insensitive) it is used as-is, otherwise a
// uuid id is prepended. Deduplication against previously accumulated tables
// is the merger's job, not the builder's.
func BuildTables(entities []models.Entity) []models.Table {
	tables := make([]models.Table, 0, len(entities))

	for _, entity := range entities {
		attrs := entity.Attributes
		hasID := false
		for _, attr := range attrs {
			if strings.EqualFold(attr.Name, "id") {
				hasID = true
				break
			}
		}
		if !hasID {
			attrs = append([]models.Attribute{{Name: "id", Type: "uuid"}}, attrs...)
		}

		columns := make([]models.Column, 0, len(attrs))
		for _, attr := range attrs {
			name := NormalizeName(attr.Name)
			colType := attr.Type
			if colType == "" {
				colType = "varchar"
			}
			columns = append(columns, models.Column{
				Name:      name,
				Type:      colType,
				IsPrimary: name == "id",
			})
		}

		tables = append(tables, models.Table{
			Name:    NormalizeName(entity.Name),
			Columns: columns,
		})
	}

	return tables
}
