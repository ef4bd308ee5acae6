package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/types"
)

// MarshalEntity serializes an entity payload to JSON. The discriminator tag
// is not part of the payload; callers store it alongside (see pkg/kb).
func MarshalEntity(e Entity) (json.RawMessage, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal entity",
			goerr.V("id", e.Core().ID), goerr.V("type", e.EntityType()))
	}
	return data, nil
}

// UnmarshalEntity deserializes an entity payload, dispatching on the
// discriminator tag to the concrete subtype. The decoded entity is
// validated; a malformed payload is an error, never a partial value.
func UnmarshalEntity(t types.EntityType, data []byte) (Entity, error) {
	var entity Entity
	switch t {
	case types.EntityTypeCharacter:
		entity = &Character{}
	case types.EntityTypePlace:
		entity = &Place{}
	case types.EntityTypeEvent:
		entity = &Event{}
	case types.EntityTypeSpecialObject:
		entity = &SpecialObject{}
	default:
		return nil, goerr.New("unknown entity type tag", goerr.V("type", string(t)))
	}

	if err := json.Unmarshal(data, entity); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal entity payload", goerr.V("type", t))
	}
	if err := entity.Core().Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid entity payload", goerr.V("type", t))
	}
	return entity, nil
}
