package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fanlore-dev/fanlore/pkg/agent/tool"
	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/kb"
)

// getCharacterInfosTool retrieves the attributes of an entity by name
type getCharacterInfosTool struct {
	graph *kb.KnowledgeGraph
}

func (t *getCharacterInfosTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "kb__get_character_infos",
		Description: "Get the stored attributes of a character or other entity by its exact name, " +
			"including description, aliases, abilities and other known details",
		Parameters: map[string]*gollem.Parameter{
			"character_name": {
				Type:        gollem.TypeString,
				Description: "The exact name of the entity as stored in the knowledge graph",
				Required:    true,
			},
		},
	}
}

func (t *getCharacterInfosTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	name, _ := args["character_name"].(string)
	if name == "" {
		return nil, fmt.Errorf("character_name is required")
	}

	tool.Update(ctx, fmt.Sprintf("Looking up %s...", name))

	entity, err := t.graph.GetEntityByName(name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get entity", goerr.V("name", name))
	}

	doc, err := entityToMap(entity)
	if err != nil {
		return nil, err
	}
	doc["type"] = entity.EntityType().String()
	return doc, nil
}

// getAllRelationshipsTool retrieves every relationship touching an entity
type getAllRelationshipsTool struct {
	graph *kb.KnowledgeGraph
}

func (t *getAllRelationshipsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "kb__get_all_relationships",
		Description: "Get all incoming and outgoing relationships of a character or other entity, " +
			"showing how it is connected to the rest of the knowledge graph",
		Parameters: map[string]*gollem.Parameter{
			"character_name": {
				Type:        gollem.TypeString,
				Description: "The exact name of the entity as stored in the knowledge graph",
				Required:    true,
			},
		},
	}
}

func (t *getAllRelationshipsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	name, _ := args["character_name"].(string)
	if name == "" {
		return nil, fmt.Errorf("character_name is required")
	}

	tool.Update(ctx, fmt.Sprintf("Collecting relationships of %s...", name))

	entity, err := t.graph.GetEntityByName(name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get entity", goerr.V("name", name))
	}

	relationships := t.graph.Relationships(entity.Core().ID)
	items := make([]map[string]any, 0, len(relationships))
	for _, r := range relationships {
		item := map[string]any{
			"id":                string(r.ID),
			"relationship_type": r.RelationshipType.String(),
			"description":       r.Description,
			"source_name":       t.entityName(r.SourceEntityID),
			"target_name":       t.entityName(r.TargetEntityID),
		}
		if r.Depth != nil {
			item["depth"] = *r.Depth
			if meaning := model.DepthMeaning(r.RelationshipType, *r.Depth); meaning != "" {
				item["depth_meaning"] = meaning
			}
		}
		items = append(items, item)
	}

	return map[string]any{"relationships": items}, nil
}

func (t *getAllRelationshipsTool) entityName(id types.EntityID) string {
	entity, err := t.graph.GetEntityByID(id)
	if err != nil {
		return string(id)
	}
	return entity.Core().Name
}

func entityToMap(entity model.Entity) (map[string]any, error) {
	raw, err := model.MarshalEntity(entity)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode entity document",
			goerr.V("name", entity.Core().Name))
	}
	return doc, nil
}
