// Package core provides the knowledge graph query tools exposed to the
// chat agent.
package core

import (
	"github.com/m-mizutani/gollem"

	"github.com/fanlore-dev/fanlore/pkg/kb"
)

// New builds the tools for the character chat use case. They let the agent
// look up entity details and relationships from the loaded knowledge graph.
func New(graph *kb.KnowledgeGraph) []gollem.Tool {
	return []gollem.Tool{
		&getCharacterInfosTool{graph: graph},
		&getAllRelationshipsTool{graph: graph},
	}
}
