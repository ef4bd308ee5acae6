package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// EntityID is a UUID-based identifier for an entity node
type EntityID string

// NewEntityID generates a new UUID v4 EntityID
func NewEntityID() EntityID {
	return EntityID(uuid.New().String())
}

// String returns the canonical string form of the EntityID
func (x EntityID) String() string {
	return string(x)
}

// Validate checks that the EntityID is a well-formed UUID
func (x EntityID) Validate() error {
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid entity ID", goerr.V("id", string(x)))
	}
	return nil
}

// ParseEntityID parses a string as an EntityID, validating the UUID form
func ParseEntityID(s string) (EntityID, error) {
	id := EntityID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// RelationshipID is a UUID-based identifier for a relationship edge
type RelationshipID string

// NewRelationshipID generates a new UUID v4 RelationshipID
func NewRelationshipID() RelationshipID {
	return RelationshipID(uuid.New().String())
}

// String returns the canonical string form of the RelationshipID
func (x RelationshipID) String() string {
	return string(x)
}

// Validate checks that the RelationshipID is a well-formed UUID
func (x RelationshipID) Validate() error {
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid relationship ID", goerr.V("id", string(x)))
	}
	return nil
}

// ParseRelationshipID parses a string as a RelationshipID, validating the UUID form
func ParseRelationshipID(s string) (RelationshipID, error) {
	id := RelationshipID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}
