package models

// Attribute is a proposed entity field as extracted from the model reply.
// Type is a semantic tag (uuid, varchar, text, integer, decimal, boolean,
// date, timestamp); unrecognized values pass through untouched.
type Attribute struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Entity is an extraction-stage concept, pre-normalization. It is discarded
// once converted to a Table.
type Entity struct {
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
}

// Relationship references entities by name. Either side may fail to resolve
// against the working schema, in which case the relationship is skipped.
type Relationship struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"` // one-to-one, one-to-many, many-to-one, many-to-many
}

type Column struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"isPrimary"`
	IsForeign bool   `json:"isForeign,omitempty"`
	Reference string `json:"reference,omitempty"` // "table.column"
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Schema is the accumulated table set for a project. It grows monotonically
// across chat turns; tables and columns are added, never removed or retyped.
type Schema struct {
	Tables []Table `json:"tables"`
}

// IsEmpty reports whether the schema has no tables yet.
func (s Schema) IsEmpty() bool {
	return len(s.Tables) == 0
}

// Clone returns a deep copy so callers can mutate the result without
// aliasing the original column slices.
func (s Schema) Clone() Schema {
	return Schema{Tables: CloneTables(s.Tables)}
}

func CloneTables(tables []Table) []Table {
	if tables == nil {
		return nil
	}
	out := make([]Table, len(tables))
	for i, t := range tables {
		cols := make([]Column, len(t.Columns))
		copy(cols, t.Columns)
		out[i] = Table{Name: t.Name, Columns: cols}
	}
	return out
}
