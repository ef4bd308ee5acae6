package kb_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/kb"
)

func TestAddEntityAndLookup(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	ch := model.NewCharacter("Gandalf")
	ch.Description = "A wizard of the Istari order."
	g.AddEntity(ctx, ch)

	gt.V(t, g.NumberOfNodes()).Equal(1)

	byID, err := g.GetEntityByID(ch.ID)
	gt.NoError(t, err)
	gt.V(t, byID.Core().Name).Equal("Gandalf")

	byName, err := g.GetEntityByName("Gandalf")
	gt.NoError(t, err)
	gt.V(t, byName.Core().ID).Equal(ch.ID)

	entityType, err := g.NodeType(ch.ID)
	gt.NoError(t, err)
	gt.V(t, entityType).Equal(types.EntityTypeCharacter)
}

func TestAddEntityIdempotentByID(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	ch := model.NewCharacter("Frodo")
	g.AddEntity(ctx, ch)

	modified := *ch
	modified.Description = "changed"
	g.AddEntity(ctx, &modified)

	gt.V(t, g.NumberOfNodes()).Equal(1)
	got, err := g.GetEntityByID(ch.ID)
	gt.NoError(t, err)
	gt.V(t, got.Core().Description).Equal("")
}

func TestDuplicateNameOverwritesIndex(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	first := model.NewCharacter("Sauron")
	second := model.NewCharacter("Sauron")
	g.AddEntity(ctx, first)
	g.AddEntity(ctx, second)

	gt.V(t, g.NumberOfNodes()).Equal(2)
	got, err := g.GetEntityByName("Sauron")
	gt.NoError(t, err)
	gt.V(t, got.Core().ID).Equal(second.ID)
}

func TestLookupMisses(t *testing.T) {
	g := kb.New()

	_, err := g.GetEntityByName("nobody")
	gt.B(t, errors.Is(err, kb.ErrEntityNotFound)).True()

	_, err = g.GetEntityByID(types.NewEntityID())
	gt.B(t, errors.Is(err, kb.ErrEntityNotFound)).True()
}

func TestAddRelationshipMultiEdge(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	gandalf := model.NewCharacter("Gandalf")
	hobbiton := model.NewPlace("Hobbiton")
	g.AddEntities(ctx, []model.Entity{gandalf, hobbiton})

	visited := model.NewRelationship(gandalf.ID, hobbiton.ID, types.RelationshipTypeVisited)
	misc := model.NewRelationship(gandalf.ID, hobbiton.ID, types.RelationshipTypeMisc)
	g.AddRelationships(ctx, []*model.Relationship{visited, misc})

	gt.V(t, g.NumberOfEdges()).Equal(2)

	got, ok := g.GetEdgeAttributes(gandalf.ID, hobbiton.ID, visited.ID)
	gt.B(t, ok).True()
	gt.V(t, got.RelationshipType).Equal(types.RelationshipTypeVisited)

	_, ok = g.GetEdgeAttributes(hobbiton.ID, gandalf.ID, visited.ID)
	gt.B(t, ok).False()

	all, err := g.GetAllEdgesBetween(gandalf.ID, hobbiton.ID)
	gt.NoError(t, err)
	gt.V(t, len(all)).Equal(2)

	_, err = g.GetAllEdgesBetween(hobbiton.ID, gandalf.ID)
	gt.B(t, errors.Is(err, kb.ErrNoEdges)).True()
}

func TestRelationshipsIncludesIncoming(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	a := model.NewCharacter("Aragorn")
	b := model.NewCharacter("Arwen")
	g.AddEntities(ctx, []model.Entity{a, b})

	out := model.NewRelationship(a.ID, b.ID, types.RelationshipTypeFamilyOf)
	in := model.NewRelationship(b.ID, a.ID, types.RelationshipTypeKnows)
	g.AddRelationships(ctx, []*model.Relationship{out, in})

	gt.A(t, g.Relationships(a.ID)).Length(2)
	gt.A(t, g.Relationships(b.ID)).Length(2)
}

func TestDanglingEndpointBecomesBareNode(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	a := model.NewCharacter("Bilbo")
	g.AddEntity(ctx, a)

	ghost := types.NewEntityID()
	r := model.NewRelationship(a.ID, ghost, types.RelationshipTypeKnows)
	g.AddRelationship(ctx, r)

	gt.V(t, g.NumberOfNodes()).Equal(2)
	gt.V(t, g.NumberOfEdges()).Equal(1)

	_, err := g.GetEntityByID(ghost)
	gt.B(t, errors.Is(err, kb.ErrEntityNotFound)).True()
}

func TestSaveRefusesBareNodes(t *testing.T) {
	ctx := context.Background()
	g := kb.New()

	a := model.NewCharacter("Bilbo")
	g.AddEntity(ctx, a)
	g.AddRelationship(ctx, model.NewRelationship(a.ID, types.NewEntityID(), types.RelationshipTypeKnows))

	path := filepath.Join(t.TempDir(), "graph.json")
	err := g.Save(ctx, path)
	gt.B(t, errors.Is(err, kb.ErrInvalidGraph)).True()
}

func buildSampleGraph(t *testing.T) (*kb.KnowledgeGraph, *model.Character, *model.Place) {
	t.Helper()
	ctx := context.Background()
	g := kb.New()

	gandalf := model.NewCharacter("Gandalf")
	gandalf.Description = "A wizard. Gandalf visited Hobbiton."
	gandalf.Aliases = []string{"Mithrandir"}
	hobbiton := model.NewPlace("Hobbiton")
	hobbiton.Description = "A village in the Shire."
	g.AddEntities(ctx, []model.Entity{gandalf, hobbiton})

	r := model.NewRelationship(gandalf.ID, hobbiton.ID, types.RelationshipTypeMisc)
	r.Description = "Gandalf visited Hobbiton."
	g.AddRelationship(ctx, r)

	return g, gandalf, hobbiton
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"graph.json", "graph.json.gz"} {
		t.Run(name, func(t *testing.T) {
			g, gandalf, hobbiton := buildSampleGraph(t)
			path := filepath.Join(t.TempDir(), name)

			gt.NoError(t, g.Save(ctx, path)).Required()

			loaded, err := kb.Load(ctx, path)
			gt.NoError(t, err).Required()
			gt.V(t, loaded.NumberOfNodes()).Equal(2)
			gt.V(t, loaded.NumberOfEdges()).Equal(1)

			got, err := loaded.GetEntityByName("Gandalf")
			gt.NoError(t, err)
			ch := gt.Cast[*model.Character](t, got)
			gt.V(t, ch.ID).Equal(gandalf.ID)
			gt.A(t, ch.Aliases).Equal([]string{"Mithrandir"})

			edges, err := loaded.GetAllEdgesBetween(gandalf.ID, hobbiton.ID)
			gt.NoError(t, err)
			gt.V(t, len(edges)).Equal(1)
			for _, r := range edges {
				gt.V(t, r.Description).Equal("Gandalf visited Hobbiton.")
			}
		})
	}
}

func TestLoadSniffsGzipWithoutSuffix(t *testing.T) {
	ctx := context.Background()
	g, gandalf, _ := buildSampleGraph(t)

	dir := t.TempDir()
	gzPath := filepath.Join(dir, "graph.json.gz")
	gt.NoError(t, g.Save(ctx, gzPath)).Required()

	// A gzipped document under a plain name must still load
	plainPath := filepath.Join(dir, "graph.json")
	gt.NoError(t, os.Rename(gzPath, plainPath)).Required()

	loaded, err := kb.Load(ctx, plainPath)
	gt.NoError(t, err).Required()
	gt.V(t, loaded.NumberOfNodes()).Equal(2)

	got, err := loaded.GetEntityByID(gandalf.ID)
	gt.NoError(t, err)
	gt.V(t, got.Core().Name).Equal("Gandalf")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := kb.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	gt.Error(t, err)
}
