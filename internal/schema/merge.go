package schema

import "github.com/Mustez-hero/KeyMap-DB-AI/internal/models"

// Merge combines a freshly produced fragment into the accumulated schema.
// Unseen tables are appended wholesale; for tables that already exist, only
// columns with unseen names are appended, in fragment order. Nothing is ever
// removed or retyped, so the result contains everything the accumulated
// schema had, and re-merging the same fragment is a no-op.
func Merge(existing, fragment models.Schema) models.Schema {
	merged := existing.Clone()

	index := make(map[string]int, len(merged.Tables))
	for i, t := range merged.Tables {
		index[t.Name] = i
	}

	for _, newTable := range fragment.Tables {
		i, ok := index[newTable.Name]
		if !ok {
			cols := make([]models.Column, len(newTable.Columns))
			copy(cols, newTable.Columns)
			merged.Tables = append(merged.Tables, models.Table{Name: newTable.Name, Columns: cols})
			index[newTable.Name] = len(merged.Tables) - 1
			continue
		}

		existingCols := make(map[string]struct{}, len(merged.Tables[i].Columns))
		for _, col := range merged.Tables[i].Columns {
			existingCols[col.Name] = struct{}{}
		}
		for _, col := range newTable.Columns {
			if _, seen := existingCols[col.Name]; seen {
				continue
			}
			merged.Tables[i].Columns = append(merged.Tables[i].Columns, col)
			existingCols[col.Name] = struct{}{}
		}
	}

	return merged
}
