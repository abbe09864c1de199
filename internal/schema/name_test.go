package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mustez-hero/KeyMap-DB-AI/internal/models"
)

func namedTables(names ...string) models.Schema {
	tables := make([]models.Table, len(names))
	for i, name := range names {
		tables[i] = models.Table{Name: name, Columns: []models.Column{idColumn()}}
	}
	return models.Schema{Tables: tables}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name   string
		tables []string
		want   string
	}{
		{"empty schema", nil, "Database Schema Project"},
		{"single table", []string{"employee"}, "employee Database"},
		{"two tables", []string{"employee", "department"}, "employee & department System"},
		{"three tables skips log", []string{"employee", "department", "activity_log"}, "employee Management System"},
		{"first survivor wins", []string{"audit_log", "employee", "department"}, "employee Management System"},
		{"history filtered", []string{"order_history", "customer", "product"}, "customer Management System"},
		{"settings filtered", []string{"user_settings", "account", "invoice"}, "account Management System"},
		{"all auxiliary", []string{"audit_log", "change_history", "app_settings"}, "audit_log Database System"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectName(namedTables(tt.tables...)))
		})
	}
}
