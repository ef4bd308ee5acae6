package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
)

func TestQueryEntity(t *testing.T) {
	ctx := context.Background()
	graph, _ := chatTestGraph(t)
	uc := usecase.NewQueryUseCase(graph)

	report, err := uc.Entity(ctx, "Gandalf")
	gt.NoError(t, err).Required()
	gt.V(t, report.Type).Equal("Character")
	gt.A(t, report.Relationships).Length(2)

	var entity map[string]any
	gt.NoError(t, json.Unmarshal(report.Entity, &entity))
	gt.V(t, entity["name"]).Equal("Gandalf")
	gt.V(t, entity["species"]).Equal("Maia")

	_, err = uc.Entity(ctx, "Nobody")
	gt.B(t, errors.Is(err, kb.ErrEntityNotFound)).True()
}

func TestQueryStats(t *testing.T) {
	graph, _ := chatTestGraph(t)
	uc := usecase.NewQueryUseCase(graph)

	stats := uc.Stats(context.Background())
	gt.V(t, stats.Nodes).Equal(3)
	gt.V(t, stats.Edges).Equal(2)
}
