package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/types"
)

// Relationship represents a directed edge between two entities. Multiple
// relationships may exist between the same ordered pair; the ID is the edge
// key. Endpoint IDs may reference entities not yet present in a graph.
type Relationship struct {
	ID               types.RelationshipID   `json:"id"`
	SourceEntityID   types.EntityID         `json:"source_entity_id"`
	TargetEntityID   types.EntityID         `json:"target_entity_id"`
	RelationshipType types.RelationshipType `json:"relationship_type"`
	Description      string                 `json:"description,omitempty"`
	Depth            *int                   `json:"depth,omitempty"`
	TimeOrPeriod     string                 `json:"time_or_period,omitempty"`
	Metadata         map[string]any         `json:"metadata,omitempty"`
}

// NewRelationship creates a relationship with a fresh ID
func NewRelationship(source, target types.EntityID, t types.RelationshipType) *Relationship {
	return &Relationship{
		ID:               types.NewRelationshipID(),
		SourceEntityID:   source,
		TargetEntityID:   target,
		RelationshipType: t,
		Metadata:         map[string]any{},
	}
}

// Validate checks the relationship invariants
func (r *Relationship) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "relationship has invalid ID")
	}
	if err := r.SourceEntityID.Validate(); err != nil {
		return goerr.Wrap(err, "relationship has invalid source entity ID", goerr.V("relationshipID", r.ID))
	}
	if err := r.TargetEntityID.Validate(); err != nil {
		return goerr.Wrap(err, "relationship has invalid target entity ID", goerr.V("relationshipID", r.ID))
	}
	if !r.RelationshipType.IsValid() {
		return goerr.New("invalid relationship type", goerr.V("relationshipID", r.ID), goerr.V("type", r.RelationshipType))
	}
	if r.Depth != nil && (*r.Depth < 1 || *r.Depth > 10) {
		return goerr.New("relationship depth must be between 1 and 10",
			goerr.V("relationshipID", r.ID), goerr.V("depth", *r.Depth))
	}
	return nil
}
