package schema

import (
	"fmt"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

// ResolveRelationships folds extracted relationships into the working table
// set: one-to-many and many-to-one add a foreign-key column to the many side,
// many-to-many synthesizes a junction table. The input is not mutated; a
// resolved copy is returned.
//
// Lookups go through a normalized-name index over the whole working set,
// which includes tables built earlier in the same batch. A relationship
// whose sides do not both resolve is skipped without error: the request may
// name an entity the extractor never produced. Both operations are
// idempotent against existing columns and tables.
//
// Junction names are "<from>_<to>" in extraction order; a reverse-order
// request would create a second junction for the same pair.
func ResolveRelationships(tables []models.Table, rels []models.Relationship) []models.Table {
	working := models.CloneTables(tables)

	index := make(map[string]int, len(working))
	for i, t := range working {
		index[t.Name] = i
	}

	for _, rel := range rels {
		fromIdx, fromOK := index[NormalizeName(rel.From)]
		toIdx, toOK := index[NormalizeName(rel.To)]
		if !fromOK || !toOK {
			continue
		}

		switch rel.Type {
		case "one-to-many", "many-to-one":
			manyIdx, oneIdx := fromIdx, toIdx
			if rel.Type == "one-to-many" {
				manyIdx, oneIdx = toIdx, fromIdx
			}
			addForeignKey(&working[manyIdx], working[oneIdx].Name)

		case "many-to-many":
			junctionName := working[fromIdx].Name + "_" + working[toIdx].Name
			if _, exists := index[junctionName]; exists {
				continue
			}
			working = append(working, junctionTable(junctionName, working[fromIdx].Name, working[toIdx].Name))
			index[junctionName] = len(working) - 1
		}
	}

	return working
}

func addForeignKey(many *models.Table, oneName string) {
	fkName := oneName + "_id"
	for _, col := range many.Columns {
		if col.Name == fkName {
			return
		}
	}
	many.Columns = append(many.Columns, models.Column{
		Name:      fkName,
		Type:      "uuid",
		IsForeign: true,
		Reference: fmt.Sprintf("%s.id", oneName),
	})
}

func junctionTable(name, from, to string) models.Table {
	return models.Table{
		Name: name,
		Columns: []models.Column{
			{Name: "id", Type: "uuid", IsPrimary: true},
			{Name: from + "_id", Type: "uuid", IsForeign: true, Reference: from + ".id"},
			{Name: to + "_id", Type: "uuid", IsForeign: true, Reference: to + ".id"},
		},
	}
}
