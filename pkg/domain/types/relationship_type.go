package types

import "fmt"

// RelationshipType classifies a directed edge between two entities
type RelationshipType string

const (
	RelationshipTypeKnows                RelationshipType = "KNOWS"
	RelationshipTypeVisited              RelationshipType = "VISITED"
	RelationshipTypeParticipatedIn       RelationshipType = "PARTICIPATED_IN"
	RelationshipTypeOwns                 RelationshipType = "OWNS"
	RelationshipTypeLocatedAt            RelationshipType = "LOCATED_AT"
	RelationshipTypeFamilyOf             RelationshipType = "FAMILY_OF"
	RelationshipTypeEnemyOf              RelationshipType = "ENEMY_OF"
	RelationshipTypeAllyOf               RelationshipType = "ALLY_OF"
	RelationshipTypeMemberOf             RelationshipType = "MEMBER_OF"
	RelationshipTypeInteractedWithObject RelationshipType = "INTERACTED_WITH_OBJECT"

	// RelationshipTypeMisc is the catch-all tag assigned to wiki-link edges
	// before any later enrichment stage disambiguates them.
	RelationshipTypeMisc RelationshipType = "MISC"
)

// AllRelationshipTypes returns all valid relationship types
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipTypeKnows,
		RelationshipTypeVisited,
		RelationshipTypeParticipatedIn,
		RelationshipTypeOwns,
		RelationshipTypeLocatedAt,
		RelationshipTypeFamilyOf,
		RelationshipTypeEnemyOf,
		RelationshipTypeAllyOf,
		RelationshipTypeMemberOf,
		RelationshipTypeInteractedWithObject,
		RelationshipTypeMisc,
	}
}

// IsValid checks if the relationship type is valid
func (t RelationshipType) IsValid() bool {
	for _, v := range AllRelationshipTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// String returns the string representation of the relationship type
func (t RelationshipType) String() string {
	return string(t)
}

// ParseRelationshipType parses a string into a RelationshipType
func ParseRelationshipType(s string) (RelationshipType, error) {
	t := RelationshipType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid relationship type: %s", s)
	}
	return t, nil
}
