// Package kb implements the knowledge graph store: a directed multi-edge
// graph whose nodes are typed entities and whose edges are relationships,
// with a secondary name index for human-readable lookup.
//
// The store is not thread-safe. It is built by a single pipeline invocation
// and treated as read-only afterwards; concurrent reads of a no-longer
// mutated graph are safe.
package kb

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
)

// node carries an entity payload with its type tag. A node added implicitly
// as a relationship endpoint has an empty tag and a nil payload until the
// entity itself is added.
type node struct {
	Type   types.EntityType
	Entity model.Entity
}

// KnowledgeGraph is a directed multi-edge graph of entities keyed by their
// IDs. Edges are keyed by relationship ID, so multiple relationships may
// exist between the same ordered pair of entities.
type KnowledgeGraph struct {
	nodes     map[types.EntityID]*node
	edges     map[types.RelationshipID]*model.Relationship
	adjacency map[types.EntityID]map[types.EntityID]map[types.RelationshipID]*model.Relationship
	nameIndex map[string]types.EntityID
}

// New creates an empty knowledge graph
func New() *KnowledgeGraph {
	return &KnowledgeGraph{
		nodes:     map[types.EntityID]*node{},
		edges:     map[types.RelationshipID]*model.Relationship{},
		adjacency: map[types.EntityID]map[types.EntityID]map[types.RelationshipID]*model.Relationship{},
		nameIndex: map[string]types.EntityID{},
	}
}

// AddEntity inserts an entity node and indexes its name. Adding an entity
// whose ID already exists is a no-op; the stored node is not updated.
//
// Two different entities sharing a name silently overwrite each other in
// the name index (a warning is logged). Name uniqueness is the caller's
// responsibility.
func (g *KnowledgeGraph) AddEntity(ctx context.Context, entity model.Entity) {
	core := entity.Core()
	if existing, ok := g.nodes[core.ID]; ok && existing.Entity != nil {
		return
	}

	if prev, ok := g.nameIndex[core.Name]; ok && prev != core.ID {
		logging.From(ctx).Warn("entity name already indexed, overwriting",
			"name", core.Name, "previousID", prev, "newID", core.ID)
	}

	g.nodes[core.ID] = &node{Type: entity.EntityType(), Entity: entity}
	g.nameIndex[core.Name] = core.ID
}

// AddEntities adds a list of entities
func (g *KnowledgeGraph) AddEntities(ctx context.Context, entities []model.Entity) {
	for _, e := range entities {
		g.AddEntity(ctx, e)
	}
}

// AddRelationship inserts a directed edge keyed by the relationship ID.
// Unknown endpoints are added as bare nodes with a warning; the caller must
// reconcile dangling edges before treating the graph as consistent.
func (g *KnowledgeGraph) AddRelationship(ctx context.Context, r *model.Relationship) {
	if _, ok := g.nodes[r.SourceEntityID]; !ok {
		logging.From(ctx).Warn("source entity for relationship not in graph, adding as bare node",
			"relationshipID", r.ID, "sourceID", r.SourceEntityID)
		g.nodes[r.SourceEntityID] = &node{}
	}
	if _, ok := g.nodes[r.TargetEntityID]; !ok {
		logging.From(ctx).Warn("target entity for relationship not in graph, adding as bare node",
			"relationshipID", r.ID, "targetID", r.TargetEntityID)
		g.nodes[r.TargetEntityID] = &node{}
	}

	g.edges[r.ID] = r

	fromTo, ok := g.adjacency[r.SourceEntityID]
	if !ok {
		fromTo = map[types.EntityID]map[types.RelationshipID]*model.Relationship{}
		g.adjacency[r.SourceEntityID] = fromTo
	}
	multi, ok := fromTo[r.TargetEntityID]
	if !ok {
		multi = map[types.RelationshipID]*model.Relationship{}
		fromTo[r.TargetEntityID] = multi
	}
	multi[r.ID] = r
}

// AddRelationships adds a list of relationships
func (g *KnowledgeGraph) AddRelationships(ctx context.Context, relationships []*model.Relationship) {
	for _, r := range relationships {
		g.AddRelationship(ctx, r)
	}
}

// GetEntityByID retrieves an entity by its unique identifier. A miss is a
// hard error so callers must handle the unknown-entity case explicitly.
func (g *KnowledgeGraph) GetEntityByID(id types.EntityID) (model.Entity, error) {
	n, ok := g.nodes[id]
	if !ok || n.Entity == nil {
		return nil, goerr.Wrap(ErrEntityNotFound, "no entity with ID", goerr.V("id", id))
	}
	return n.Entity, nil
}

// GetEntityByName retrieves an entity by its exact name via the name index.
// A miss is a hard error, never a nil entity.
func (g *KnowledgeGraph) GetEntityByName(name string) (model.Entity, error) {
	id, ok := g.nameIndex[name]
	if !ok {
		return nil, goerr.Wrap(ErrEntityNotFound, "no entity with name", goerr.V("name", name))
	}
	return g.GetEntityByID(id)
}

// HasName reports whether the name index contains the given entity name
func (g *KnowledgeGraph) HasName(name string) bool {
	_, ok := g.nameIndex[name]
	return ok
}

// NodeType returns the type tag stored on the node with the given ID
func (g *KnowledgeGraph) NodeType(id types.EntityID) (types.EntityType, error) {
	n, ok := g.nodes[id]
	if !ok || n.Entity == nil {
		return "", goerr.Wrap(ErrEntityNotFound, "no entity with ID", goerr.V("id", id))
	}
	return n.Type, nil
}

// GetEdgeAttributes returns the payload of the single edge identified by
// (source, target, relationship ID), or false when that keyed edge does
// not exist.
func (g *KnowledgeGraph) GetEdgeAttributes(source, target types.EntityID, relationshipID types.RelationshipID) (*model.Relationship, bool) {
	r, ok := g.adjacency[source][target][relationshipID]
	return r, ok
}

// GetAllEdgesBetween returns all multi-edges from source to target keyed by
// relationship ID. It fails when no such edge exists.
func (g *KnowledgeGraph) GetAllEdgesBetween(source, target types.EntityID) (map[types.RelationshipID]*model.Relationship, error) {
	multi := g.adjacency[source][target]
	if len(multi) == 0 {
		return nil, goerr.Wrap(ErrNoEdges, "no edges between entities",
			goerr.V("sourceID", source), goerr.V("targetID", target))
	}
	out := make(map[types.RelationshipID]*model.Relationship, len(multi))
	for k, v := range multi {
		out[k] = v
	}
	return out, nil
}

// Relationships returns every relationship touching the given entity,
// incoming and outgoing, sorted by relationship ID for stable output.
func (g *KnowledgeGraph) Relationships(id types.EntityID) []*model.Relationship {
	var out []*model.Relationship
	for _, r := range g.edges {
		if r.SourceEntityID == id || r.TargetEntityID == id {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NumberOfNodes returns the node count, bare endpoint nodes included
func (g *KnowledgeGraph) NumberOfNodes() int {
	return len(g.nodes)
}

// NumberOfEdges returns the edge count
func (g *KnowledgeGraph) NumberOfEdges() int {
	return len(g.edges)
}

// EntityIDs returns the IDs of all typed entity nodes, sorted
func (g *KnowledgeGraph) EntityIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(g.nodes))
	for id, n := range g.nodes {
		if n.Entity != nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RelationshipIDs returns the IDs of all edges, sorted
func (g *KnowledgeGraph) RelationshipIDs() []types.RelationshipID {
	ids := make([]types.RelationshipID, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NameIndex returns a copy of the name-to-ID index
func (g *KnowledgeGraph) NameIndex() map[string]types.EntityID {
	out := make(map[string]types.EntityID, len(g.nameIndex))
	for name, id := range g.nameIndex {
		out[name] = id
	}
	return out
}
