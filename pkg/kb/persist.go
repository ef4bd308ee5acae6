package kb

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/safe"
)

// graphDocument is the on-disk representation of a knowledge graph. Nodes
// and links follow the node-link convention so the file remains usable by
// generic graph tooling.
type graphDocument struct {
	GraphData         graphData                 `json:"graph_data"`
	MapEntityNameToID map[string]types.EntityID `json:"map_entity_name_to_id"`
}

type graphData struct {
	Nodes []nodeRecord `json:"nodes"`
	Links []linkRecord `json:"links"`
}

type nodeRecord struct {
	ID     types.EntityID   `json:"id"`
	Type   types.EntityType `json:"type"`
	Entity json.RawMessage  `json:"entity"`
}

type linkRecord struct {
	Source       types.EntityID       `json:"source"`
	Target       types.EntityID       `json:"target"`
	Key          types.RelationshipID `json:"key"`
	Relationship *model.Relationship  `json:"relationship"`
}

// Save serializes the graph as a single JSON document at path. A path
// ending in ".gz" is gzip-compressed. A graph that still contains bare
// nodes (relationship endpoints never resolved to entities) cannot be
// saved.
func (g *KnowledgeGraph) Save(ctx context.Context, path string) error {
	doc, err := g.toDocument()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create graph file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return goerr.Wrap(err, "failed to encode graph document", goerr.V("path", path))
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return goerr.Wrap(err, "failed to finalize gzip stream", goerr.V("path", path))
		}
	}

	logging.From(ctx).Info("saved knowledge graph",
		"path", path,
		"nodes", g.NumberOfNodes(),
		"edges", g.NumberOfEdges())
	return nil
}

func (g *KnowledgeGraph) toDocument() (*graphDocument, error) {
	doc := &graphDocument{
		MapEntityNameToID: g.NameIndex(),
	}

	for _, id := range sortedNodeIDs(g.nodes) {
		n := g.nodes[id]
		if n.Entity == nil {
			return nil, goerr.Wrap(ErrInvalidGraph, "graph contains bare node without entity payload",
				goerr.V("id", id))
		}
		raw, err := model.MarshalEntity(n.Entity)
		if err != nil {
			return nil, err
		}
		doc.GraphData.Nodes = append(doc.GraphData.Nodes, nodeRecord{
			ID:     id,
			Type:   n.Type,
			Entity: raw,
		})
	}

	for _, id := range g.RelationshipIDs() {
		r := g.edges[id]
		doc.GraphData.Links = append(doc.GraphData.Links, linkRecord{
			Source:       r.SourceEntityID,
			Target:       r.TargetEntityID,
			Key:          r.ID,
			Relationship: r,
		})
	}

	return doc, nil
}

func sortedNodeIDs(nodes map[types.EntityID]*node) []types.EntityID {
	ids := make([]types.EntityID, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load reads a graph document written by Save and reconstructs the graph.
// The load is all-or-nothing: any invalid record fails the whole load and
// returns no partial graph.
func Load(ctx context.Context, path string) (*KnowledgeGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open graph file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	// Detect gzip by magic bytes so renamed files still load
	br := bufio.NewReader(f)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open gzip stream", goerr.V("path", path))
		}
		defer safe.Close(ctx, gz)
		r = gz
	}

	var doc graphDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode graph document", goerr.V("path", path))
	}

	g, err := fromDocument(&doc)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid graph document", goerr.V("path", path))
	}

	logging.From(ctx).Info("loaded knowledge graph",
		"path", path,
		"nodes", g.NumberOfNodes(),
		"edges", g.NumberOfEdges())
	return g, nil
}

func fromDocument(doc *graphDocument) (*KnowledgeGraph, error) {
	g := New()

	for _, rec := range doc.GraphData.Nodes {
		entity, err := model.UnmarshalEntity(rec.Type, rec.Entity)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid node record", goerr.V("id", rec.ID))
		}
		if entity.Core().ID != rec.ID {
			return nil, goerr.Wrap(ErrInvalidGraph, "node ID does not match entity payload",
				goerr.V("nodeID", rec.ID), goerr.V("entityID", entity.Core().ID))
		}
		g.nodes[rec.ID] = &node{Type: rec.Type, Entity: entity}
	}

	for _, rec := range doc.GraphData.Links {
		r := rec.Relationship
		if r == nil {
			return nil, goerr.Wrap(ErrInvalidGraph, "link record without relationship payload",
				goerr.V("key", rec.Key))
		}
		if err := r.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid link record", goerr.V("key", rec.Key))
		}
		if r.ID != rec.Key || r.SourceEntityID != rec.Source || r.TargetEntityID != rec.Target {
			return nil, goerr.Wrap(ErrInvalidGraph, "link record does not match relationship payload",
				goerr.V("key", rec.Key))
		}
		if _, ok := g.nodes[r.SourceEntityID]; !ok {
			return nil, goerr.Wrap(ErrInvalidGraph, "link references unknown source entity",
				goerr.V("key", rec.Key), goerr.V("sourceID", r.SourceEntityID))
		}
		if _, ok := g.nodes[r.TargetEntityID]; !ok {
			return nil, goerr.Wrap(ErrInvalidGraph, "link references unknown target entity",
				goerr.V("key", rec.Key), goerr.V("targetID", r.TargetEntityID))
		}
		g.AddRelationship(context.Background(), r)
	}

	for name, id := range doc.MapEntityNameToID {
		n, ok := g.nodes[id]
		if !ok || n.Entity == nil {
			return nil, goerr.Wrap(ErrInvalidGraph, "name index references unknown entity",
				goerr.V("name", name), goerr.V("id", id))
		}
		g.nameIndex[name] = id
	}

	return g, nil
}
