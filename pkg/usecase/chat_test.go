package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
)

func chatTestGraph(t *testing.T) (*kb.KnowledgeGraph, *model.Character) {
	t.Helper()
	ctx := context.Background()
	g := kb.New()

	gandalf := model.NewCharacter("Gandalf")
	gandalf.Description = "A wise and powerful wizard."
	gandalf.Species = "Maia"
	frodo := model.NewCharacter("Frodo")
	hobbiton := model.NewPlace("Hobbiton")
	g.AddEntities(ctx, []model.Entity{gandalf, frodo, hobbiton})

	knows := model.NewRelationship(gandalf.ID, frodo.ID, types.RelationshipTypeKnows)
	knows.Description = "Gandalf is a mentor to Frodo."
	depth := 8
	knows.Depth = &depth
	visited := model.NewRelationship(gandalf.ID, hobbiton.ID, types.RelationshipTypeVisited)
	g.AddRelationships(ctx, []*model.Relationship{knows, visited})

	return g, gandalf
}

func TestBuildChatSystemPrompt(t *testing.T) {
	graph, gandalf := chatTestGraph(t)

	prompt, err := usecase.BuildChatSystemPrompt(graph, gandalf, "Middle-earth Wiki")
	gt.NoError(t, err).Required()

	gt.B(t, strings.Contains(prompt, "You are Gandalf")).True()
	gt.B(t, strings.Contains(prompt, "Middle-earth Wiki")).True()
	gt.B(t, strings.Contains(prompt, "A wise and powerful wizard.")).True()
	gt.B(t, strings.Contains(prompt, "KNOWS to Frodo")).True()
	gt.B(t, strings.Contains(prompt, "VISITED to Hobbiton")).True()
	gt.B(t, strings.Contains(prompt, "kb__get_character_infos")).True()
}

func TestBuildChatSystemPromptNoRelationships(t *testing.T) {
	ctx := context.Background()
	g := kb.New()
	loner := model.NewCharacter("Tom Bombadil")
	g.AddEntity(ctx, loner)

	prompt, err := usecase.BuildChatSystemPrompt(g, loner, "Middle-earth Wiki")
	gt.NoError(t, err).Required()
	gt.B(t, strings.Contains(prompt, "(no recorded relationships)")).True()
}

func TestNewChatUseCaseRejectsNonCharacter(t *testing.T) {
	ctx := context.Background()
	graph, _ := chatTestGraph(t)

	_, err := usecase.NewChatUseCase(ctx, nil, graph, "Hobbiton", "Middle-earth Wiki")
	gt.B(t, errors.Is(err, usecase.ErrNotACharacter)).True()

	_, err = usecase.NewChatUseCase(ctx, nil, graph, "Nobody", "Middle-earth Wiki")
	gt.B(t, errors.Is(err, kb.ErrEntityNotFound)).True()
}

func TestChat_WithRealGemini(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT not set")
	}
	location := os.Getenv("TEST_GEMINI_LOCATION")
	if location == "" {
		t.Skip("TEST_GEMINI_LOCATION not set")
	}

	ctx := context.Background()
	llmClient, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	graph, _ := chatTestGraph(t)
	uc, err := usecase.NewChatUseCase(ctx, llmClient, graph, "Gandalf", "Middle-earth Wiki")
	gt.NoError(t, err).Required()
	gt.V(t, uc.CharacterName()).Equal("Gandalf")

	reply, err := uc.Send(ctx, "Who is Frodo to you?")
	gt.NoError(t, err).Required()
	gt.B(t, reply != "").True()
}
