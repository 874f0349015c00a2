// Package cli provides the operations behind admin-cli.
package cli

import (
	"github.com/bosserz/ged-assessment/internal/storage"
)

// Context is the context for the CLI.
type Context struct {
	submissions *storage.SubmissionRepository
}

// NewContext creates a new Context.
func NewContext(submissions *storage.SubmissionRepository) *Context {
	return &Context{
		submissions: submissions,
	}
}
