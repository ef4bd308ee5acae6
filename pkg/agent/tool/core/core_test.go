package core_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/agent/tool/core"
	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/kb"
)

func buildGraph(t *testing.T) *kb.KnowledgeGraph {
	t.Helper()
	ctx := context.Background()
	g := kb.New()

	gandalf := model.NewCharacter("Gandalf")
	gandalf.Description = "A wise and powerful wizard."
	gandalf.Aliases = []string{"Mithrandir"}
	frodo := model.NewCharacter("Frodo")
	g.AddEntities(ctx, []model.Entity{gandalf, frodo})

	r := model.NewRelationship(gandalf.ID, frodo.ID, types.RelationshipTypeKnows)
	r.Description = "Gandalf is a mentor to Frodo."
	depth := 8
	r.Depth = &depth
	g.AddRelationship(ctx, r)

	return g
}

func TestGetCharacterInfos(t *testing.T) {
	ctx := context.Background()
	tools := core.New(buildGraph(t))
	gt.A(t, tools).Length(2)

	var infoTool = tools[0]
	gt.V(t, infoTool.Spec().Name).Equal("kb__get_character_infos")

	resp, err := infoTool.Run(ctx, map[string]any{"character_name": "Gandalf"})
	gt.NoError(t, err).Required()
	gt.V(t, resp["name"]).Equal("Gandalf")
	gt.V(t, resp["description"]).Equal("A wise and powerful wizard.")
	gt.V(t, resp["type"]).Equal("Character")

	_, err = infoTool.Run(ctx, map[string]any{"character_name": "Unknown"})
	gt.Error(t, err)

	_, err = infoTool.Run(ctx, map[string]any{})
	gt.Error(t, err)
}

func TestGetAllRelationships(t *testing.T) {
	ctx := context.Background()
	tools := core.New(buildGraph(t))

	relTool := tools[1]
	gt.V(t, relTool.Spec().Name).Equal("kb__get_all_relationships")

	resp, err := relTool.Run(ctx, map[string]any{"character_name": "Frodo"})
	gt.NoError(t, err).Required()

	items := gt.Cast[[]map[string]any](t, resp["relationships"])
	gt.A(t, items).Length(1)
	gt.V(t, items[0]["relationship_type"]).Equal("KNOWS")
	gt.V(t, items[0]["source_name"]).Equal("Gandalf")
	gt.V(t, items[0]["target_name"]).Equal("Frodo")
	gt.V(t, items[0]["depth"]).Equal(8)
}
