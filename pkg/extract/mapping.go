package extract

import "github.com/fanlore-dev/fanlore/pkg/domain/types"

// CategoryMapping maps wiki category names to entity types. Category names
// are matched exactly as they appear inside the category tag, whitespace
// included.
type CategoryMapping map[string]types.EntityType

// DefaultCategoryMapping returns the built-in mapping used when no custom
// mapping is configured. The " Characters" key with a leading space covers
// a tagging quirk seen on real wikis.
func DefaultCategoryMapping() CategoryMapping {
	return CategoryMapping{
		"Characters":    types.EntityTypeCharacter,
		" Characters":   types.EntityTypeCharacter,
		"Nemesis":       types.EntityTypeCharacter,
		"Places":        types.EntityTypePlace,
		"Planets":       types.EntityTypePlace,
		"Cities":        types.EntityTypePlace,
		"Events":        types.EntityTypeEvent,
		"Calendar":      types.EntityTypeEvent,
		"SpecialObject": types.EntityTypeSpecialObject,
	}
}

// Resolve returns the entity type of the first category with a mapping.
// Later categories are ignored once one matches.
func (m CategoryMapping) Resolve(categories []string) (types.EntityType, bool) {
	for _, c := range categories {
		if t, ok := m[c]; ok {
			return t, true
		}
	}
	return "", false
}
