package types

import "fmt"

// EntityType is the discriminator tag of an entity node. It identifies the
// concrete payload type both in the graph and in the persisted document.
type EntityType string

const (
	EntityTypeCharacter     EntityType = "Character"
	EntityTypePlace         EntityType = "Place"
	EntityTypeEvent         EntityType = "Event"
	EntityTypeSpecialObject EntityType = "SpecialObject"
)

// AllEntityTypes returns all valid entity types
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeCharacter,
		EntityTypePlace,
		EntityTypeEvent,
		EntityTypeSpecialObject,
	}
}

// IsValid checks if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeCharacter,
		EntityTypePlace,
		EntityTypeEvent,
		EntityTypeSpecialObject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entity type: %s", s)
	}
	return t, nil
}
