package usecase

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fanlore-dev/fanlore/pkg/extract"
	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/service/fandom"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
)

// BuildUseCase runs the dump-to-graph pipeline: acquire an XML dump, parse
// it, extract entities and relationships, and persist the resulting graph.
type BuildUseCase struct {
	client    *fandom.Client
	extractor *extract.Extractor
}

// BuildOption is a functional option for BuildUseCase configuration
type BuildOption func(*BuildUseCase)

// WithClient overrides the dump download client
func WithClient(c *fandom.Client) BuildOption {
	return func(uc *BuildUseCase) {
		uc.client = c
	}
}

// WithExtractor overrides the entity and relationship extractor
func WithExtractor(x *extract.Extractor) BuildOption {
	return func(uc *BuildUseCase) {
		uc.extractor = x
	}
}

// NewBuildUseCase creates a BuildUseCase instance
func NewBuildUseCase(opts ...BuildOption) *BuildUseCase {
	uc := &BuildUseCase{
		client:    fandom.NewClient(),
		extractor: extract.New(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// BuildResult summarizes a finished pipeline run
type BuildResult struct {
	Pages         int
	Entities      int
	Relationships int
	OutputPath    string
}

// BuildFromFile builds the knowledge graph from an XML dump already on
// disk and saves it to outputPath. An outputPath ending in ".gz" is
// compressed.
func (uc *BuildUseCase) BuildFromFile(ctx context.Context, dumpPath, outputPath string) (*BuildResult, error) {
	content, err := fandom.ParseFile(ctx, dumpPath)
	if err != nil {
		return nil, err
	}
	return uc.buildFromContent(ctx, content, outputPath)
}

// BuildFromWiki fetches the current pages dump of the given wiki, extracts
// it into workDir and builds the knowledge graph from it.
func (uc *BuildUseCase) BuildFromWiki(ctx context.Context, wikiURL, workDir, outputPath string) (*BuildResult, error) {
	logger := logging.From(ctx)

	dumpURL, err := uc.client.DumpURL(ctx, wikiURL)
	if err != nil {
		return nil, err
	}

	archivePath := filepath.Join(workDir, archiveFileName(dumpURL))
	if err := uc.client.Download(ctx, dumpURL, archivePath); err != nil {
		return nil, err
	}

	xmlPath := archivePath
	if strings.EqualFold(filepath.Ext(archivePath), ".7z") {
		xmlPath, err = fandom.Extract7z(ctx, archivePath, filepath.Join(workDir, "extracted"))
		if err != nil {
			return nil, err
		}
	}

	logger.Info("dump ready", "wikiURL", wikiURL, "xmlPath", xmlPath)
	return uc.BuildFromFile(ctx, xmlPath, outputPath)
}

func (uc *BuildUseCase) buildFromContent(ctx context.Context, content *fandom.SiteContent, outputPath string) (*BuildResult, error) {
	graph := kb.New()

	entities := uc.extractor.PopulateEntities(ctx, content, graph)
	relationships := uc.extractor.PopulateRelationships(ctx, content, graph)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
		}
	}
	if err := graph.Save(ctx, outputPath); err != nil {
		return nil, err
	}

	return &BuildResult{
		Pages:         len(content.Pages),
		Entities:      entities,
		Relationships: relationships,
		OutputPath:    outputPath,
	}, nil
}

// archiveFileName derives a local file name from the dump URL, falling
// back to a fixed name when the URL has no usable path component.
func archiveFileName(dumpURL string) string {
	u, err := url.Parse(dumpURL)
	if err != nil {
		return "dump.7z"
	}
	base := path.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "dump.7z"
	}
	return base
}
