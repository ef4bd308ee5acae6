package extract

import (
	"context"
	"sort"

	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/service/fandom"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/wikitext"
)

// RelationshipsFromPage extracts relationships from the links in a page's
// latest revision. Only links that resolve to entities already in the graph
// become edges; duplicate links collapse to one edge and links from a page
// to itself are ignored.
//
// Link-derived relationships carry the catch-all type until classified by
// a later enrichment pass.
func (x *Extractor) RelationshipsFromPage(ctx context.Context, page *fandom.Page, graph *kb.KnowledgeGraph) []*model.Relationship {
	logger := logging.From(ctx)

	source, err := graph.GetEntityByName(page.Title)
	if err != nil {
		logger.Warn("page has no entity in graph, skipping relationship extraction", "pageTitle", page.Title)
		return nil
	}

	rev := page.LatestRevision()
	if rev == nil {
		logger.Warn("page has no revisions, skipping relationship extraction", "pageTitle", page.Title)
		return nil
	}
	if rev.Text == nil || rev.Text.Content == "" {
		logger.Warn("latest revision has no text content, skipping relationship extraction", "pageTitle", page.Title)
		return nil
	}
	content := rev.Text.Content

	links := wikitext.ExtractLinks(content)
	logger.Debug("found links in page", "pageTitle", page.Title, "links", len(links))

	seen := map[string]bool{}
	var targets []string
	for _, link := range links {
		if seen[link] || link == page.Title || !graph.HasName(link) {
			seen[link] = true
			continue
		}
		seen[link] = true
		targets = append(targets, link)
	}
	sort.Strings(targets)

	var relationships []*model.Relationship
	for _, target := range targets {
		targetEntity, err := graph.GetEntityByName(target)
		if err != nil {
			continue
		}
		r := model.NewRelationship(source.Core().ID, targetEntity.Core().ID, types.RelationshipTypeMisc)
		r.Description = wikitext.SentencesWithKeyword(content, target)
		relationships = append(relationships, r)
	}
	return relationships
}

// PopulateRelationships extracts relationships from every page whose title
// resolves to a graph entity and adds them as edges. It returns the number
// of relationships added.
func (x *Extractor) PopulateRelationships(ctx context.Context, content *fandom.SiteContent, graph *kb.KnowledgeGraph) int {
	logger := logging.From(ctx)
	if content == nil || len(content.Pages) == 0 {
		logger.Warn("no pages in site content, skipping relationship population")
		return 0
	}

	added := 0
	for _, page := range content.Pages {
		if !graph.HasName(page.Title) {
			continue
		}
		relationships := x.RelationshipsFromPage(ctx, page, graph)
		graph.AddRelationships(ctx, relationships)
		added += len(relationships)
	}

	logger.Info("relationship population complete", "pages", len(content.Pages), "relationships", added)
	return added
}
