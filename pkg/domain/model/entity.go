package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/types"
)

// EntityCore holds the fields shared by every entity subtype. The ID is
// generated at creation and never changes; Name doubles as the secondary
// lookup key in a knowledge graph and must be unique within one graph for
// name-based resolution to work.
type EntityCore struct {
	ID           types.EntityID `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	TimeOrPeriod string         `json:"time_or_period,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Validate checks the invariants common to all entity subtypes
func (x *EntityCore) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "entity has invalid ID", goerr.V("name", x.Name))
	}
	if x.Name == "" {
		return goerr.New("entity name is required", goerr.V("id", x.ID))
	}
	return nil
}

// Entity is a typed node of the knowledge graph. Concrete subtypes are
// Character, Place, Event and SpecialObject. Entities are value records:
// once inserted into a graph they must not be mutated.
type Entity interface {
	Core() *EntityCore
	EntityType() types.EntityType
}

func newCore(name string) EntityCore {
	return EntityCore{
		ID:       types.NewEntityID(),
		Name:     name,
		Metadata: map[string]any{},
	}
}

// Character represents a character of the source wiki
type Character struct {
	EntityCore
	Aliases             []string          `json:"aliases"`
	Species             string            `json:"species,omitempty"`
	Abilities           []string          `json:"abilities"`
	Occupation          string            `json:"occupation,omitempty"`
	PhysicalDescription map[string]string `json:"physical_description"`
	PersonalityTraits   []string          `json:"personality_traits"`
}

// NewCharacter creates a Character with a fresh ID and placeholder fields
func NewCharacter(name string) *Character {
	return &Character{
		EntityCore:          newCore(name),
		Aliases:             []string{},
		Abilities:           []string{},
		PhysicalDescription: map[string]string{},
		PersonalityTraits:   []string{},
	}
}

// Core returns the shared entity fields
func (x *Character) Core() *EntityCore { return &x.EntityCore }

// EntityType returns the discriminator tag of the entity
func (x *Character) EntityType() types.EntityType { return types.EntityTypeCharacter }

// Place represents a location or place
type Place struct {
	EntityCore
	LocationType string `json:"location_type,omitempty"` // e.g. City, Planet, Building, Region
	Coordinates  string `json:"coordinates,omitempty"`
}

// NewPlace creates a Place with a fresh ID and placeholder fields
func NewPlace(name string) *Place {
	return &Place{EntityCore: newCore(name)}
}

func (x *Place) Core() *EntityCore { return &x.EntityCore }

func (x *Place) EntityType() types.EntityType { return types.EntityTypePlace }

// Event represents an event or occurrence
type Event struct {
	EntityCore
	EventType string `json:"event_type,omitempty"` // e.g. Conflict or War, Feast, Era
}

// NewEvent creates an Event with a fresh ID and placeholder fields
func NewEvent(name string) *Event {
	return &Event{EntityCore: newCore(name)}
}

func (x *Event) Core() *EntityCore { return &x.EntityCore }

func (x *Event) EntityType() types.EntityType { return types.EntityTypeEvent }

// SpecialObject represents a notable object such as an artifact or weapon
type SpecialObject struct {
	EntityCore
	ObjectType string `json:"object_type,omitempty"` // e.g. Artifact, Weapon, Technology
}

// NewSpecialObject creates a SpecialObject with a fresh ID and placeholder fields
func NewSpecialObject(name string) *SpecialObject {
	return &SpecialObject{EntityCore: newCore(name)}
}

func (x *SpecialObject) Core() *EntityCore { return &x.EntityCore }

func (x *SpecialObject) EntityType() types.EntityType { return types.EntityTypeSpecialObject }

// NewEntityOfType creates an empty entity of the given subtype with
// placeholder field values. Returns an error for unknown types.
func NewEntityOfType(t types.EntityType, name string) (Entity, error) {
	switch t {
	case types.EntityTypeCharacter:
		return NewCharacter(name), nil
	case types.EntityTypePlace:
		return NewPlace(name), nil
	case types.EntityTypeEvent:
		return NewEvent(name), nil
	case types.EntityTypeSpecialObject:
		return NewSpecialObject(name), nil
	default:
		return nil, goerr.New("unknown entity type", goerr.V("type", t), goerr.V("name", name))
	}
}

// PlaceholderFields returns the names of the subtype-specific fields that an
// enrichment step is allowed to fill. Values under any other key must be
// discarded before merging.
func PlaceholderFields(t types.EntityType) []string {
	switch t {
	case types.EntityTypeCharacter:
		return []string{"aliases", "species", "abilities", "occupation", "physical_description", "personality_traits"}
	case types.EntityTypePlace:
		return []string{"location_type", "coordinates"}
	case types.EntityTypeEvent:
		return []string{"event_type"}
	case types.EntityTypeSpecialObject:
		return []string{"object_type"}
	default:
		return nil
	}
}
