// Package extract turns parsed wiki pages into knowledge graph entities and
// relationships. Entity types are resolved from page categories, and page
// links between known entities become graph edges.
package extract

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/domain/interfaces"
	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/service/fandom"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
	"github.com/fanlore-dev/fanlore/pkg/utils/wikitext"
)

// Entity descriptions are clipped to keep graph documents compact
const maxDescriptionRunes = 500

// Extractor builds entities and relationships from parsed site content
type Extractor struct {
	mapping  CategoryMapping
	enricher interfaces.Enricher
}

type Option func(*Extractor)

// WithMapping replaces the default category to entity type mapping
func WithMapping(m CategoryMapping) Option {
	return func(x *Extractor) {
		x.mapping = m
	}
}

// WithEnricher enables LLM-backed filling of type-specific entity fields.
// Without it those fields keep their empty defaults.
func WithEnricher(e interfaces.Enricher) Option {
	return func(x *Extractor) {
		x.enricher = e
	}
}

// New creates an extractor
func New(opts ...Option) *Extractor {
	x := &Extractor{
		mapping: DefaultCategoryMapping(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// EntityFromPage extracts an entity from a single page. It returns false
// when the page cannot yield one: no revisions, no text content, or no
// category that maps to an entity type.
func (x *Extractor) EntityFromPage(ctx context.Context, page *fandom.Page) (model.Entity, bool) {
	logger := logging.From(ctx)

	rev := page.LatestRevision()
	if rev == nil {
		logger.Warn("page has no revisions, skipping entity extraction", "pageTitle", page.Title)
		return nil, false
	}
	if rev.Text == nil || rev.Text.Content == "" {
		logger.Warn("latest revision has no text content, skipping entity extraction", "pageTitle", page.Title)
		return nil, false
	}

	content := rev.Text.Content
	entityType, ok := x.mapping.Resolve(wikitext.ExtractCategories(content))
	if !ok {
		logger.Warn("could not determine entity type", "pageTitle", page.Title)
		return nil, false
	}

	entity, err := model.NewEntityOfType(entityType, page.Title)
	if err != nil {
		logger.Warn("failed to instantiate entity", "pageTitle", page.Title, "error", err)
		return nil, false
	}
	entity.Core().Description = truncateDescription(content)

	if x.enricher != nil {
		if err := x.enrich(ctx, entity, content); err != nil {
			logger.Warn("entity enrichment failed, keeping defaults",
				"pageTitle", page.Title, "error", err)
		}
	}

	return entity, true
}

// PopulateEntities extracts an entity from every page that yields one and
// adds them to the graph. It returns the number of entities added.
func (x *Extractor) PopulateEntities(ctx context.Context, content *fandom.SiteContent, graph *kb.KnowledgeGraph) int {
	logger := logging.From(ctx)
	if content == nil || len(content.Pages) == 0 {
		logger.Warn("no pages in site content, nothing to populate")
		return 0
	}

	added := 0
	for _, page := range content.Pages {
		entity, ok := x.EntityFromPage(ctx, page)
		if !ok {
			continue
		}
		graph.AddEntity(ctx, entity)
		added++
		logger.Debug("added entity", "name", entity.Core().Name, "type", entity.EntityType())
	}

	logger.Info("entity population complete", "pages", len(content.Pages), "entities", added)
	return added
}

// enrich fills type-specific fields from the page text via the configured
// enricher. Only fields the entity type declares as fillable are applied,
// anything else the enricher returns is dropped.
func (x *Extractor) enrich(ctx context.Context, entity model.Entity, content string) error {
	fields := model.PlaceholderFields(entity.EntityType())
	values, err := x.enricher.FillEntityFields(ctx, content, fields)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	allowed := map[string]bool{}
	for _, f := range fields {
		allowed[f] = true
	}
	filtered := map[string]any{}
	for k, v := range values {
		if allowed[k] && v != nil {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	return applyFields(entity, filtered)
}

// applyFields overlays field values onto an entity through its JSON form
func applyFields(entity model.Entity, values map[string]any) error {
	raw, err := model.MarshalEntity(entity)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return goerr.Wrap(err, "failed to decode entity document")
	}
	for k, v := range values {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return goerr.Wrap(err, "failed to encode merged entity document")
	}
	if err := json.Unmarshal(merged, entity); err != nil {
		return goerr.Wrap(err, "failed to apply enriched fields",
			goerr.V("name", entity.Core().Name))
	}
	return nil
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionRunes {
		return s
	}
	return string(runes[:maxDescriptionRunes]) + "..."
}
