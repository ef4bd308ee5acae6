package usecase

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/kb"
)

// QueryUseCase answers lookups against a loaded knowledge graph
type QueryUseCase struct {
	graph *kb.KnowledgeGraph
}

// NewQueryUseCase creates a QueryUseCase instance
func NewQueryUseCase(graph *kb.KnowledgeGraph) *QueryUseCase {
	return &QueryUseCase{graph: graph}
}

// EntityReport is the query result for a single entity
type EntityReport struct {
	Type          string            `json:"type"`
	Entity        json.RawMessage   `json:"entity"`
	Relationships []json.RawMessage `json:"relationships"`
}

// Entity looks up an entity by exact name and returns its attributes
// together with every relationship touching it.
func (uc *QueryUseCase) Entity(ctx context.Context, name string) (*EntityReport, error) {
	entity, err := uc.graph.GetEntityByName(name)
	if err != nil {
		return nil, err
	}

	raw, err := model.MarshalEntity(entity)
	if err != nil {
		return nil, err
	}

	report := &EntityReport{
		Type:   entity.EntityType().String(),
		Entity: raw,
	}
	for _, r := range uc.graph.Relationships(entity.Core().ID) {
		encoded, err := json.Marshal(r)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode relationship", goerr.V("id", r.ID))
		}
		report.Relationships = append(report.Relationships, encoded)
	}
	return report, nil
}

// Stats summarizes the size of the graph
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

// Stats returns node and edge counts of the graph
func (uc *QueryUseCase) Stats(ctx context.Context) *Stats {
	return &Stats{
		Nodes: uc.graph.NumberOfNodes(),
		Edges: uc.graph.NumberOfEdges(),
	}
}
