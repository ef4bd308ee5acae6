package interfaces

import "context"

// Enricher fills entity fields from free-form source text. It is an
// external collaborator (typically LLM-backed); extraction must succeed
// without it and must filter its output to the expected field names.
type Enricher interface {
	// FillEntityFields returns values for the requested fields extracted
	// from text, keyed by field name. Missing fields may be absent from
	// the result. Keys outside fields must be ignored by the caller.
	FillEntityFields(ctx context.Context, text string, fields []string) (map[string]any, error)
}
