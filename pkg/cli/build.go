package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fanlore-dev/fanlore/pkg/cli/config"
	"github.com/fanlore-dev/fanlore/pkg/extract"
	"github.com/fanlore-dev/fanlore/pkg/service/enrich"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
	"github.com/fanlore-dev/fanlore/pkg/utils/logging"
)

func cmdBuild() *cli.Command {
	var wikiURL string
	var dumpFile string
	var output string
	var workDir string
	var enableEnrich bool
	var mappingCfg config.Mapping
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "wiki-url",
			Usage:       "URL of the Fandom wiki to fetch the dump from (e.g. https://asimov.fandom.com/)",
			Sources:     cli.EnvVars("FANLORE_WIKI_URL"),
			Destination: &wikiURL,
		},
		&cli.StringFlag{
			Name:        "dump-file",
			Usage:       "Path to an XML dump already on disk (skips download)",
			Sources:     cli.EnvVars("FANLORE_DUMP_FILE"),
			Destination: &dumpFile,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output path for the graph document (use a .json.gz suffix for compression)",
			Required:    true,
			Sources:     cli.EnvVars("FANLORE_OUTPUT"),
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Working directory for downloaded and extracted dump files",
			Sources:     cli.EnvVars("FANLORE_WORK_DIR"),
			Destination: &workDir,
		},
		&cli.BoolFlag{
			Name:        "enrich",
			Usage:       "Fill entity fields with the LLM during extraction (requires Gemini configuration)",
			Sources:     cli.EnvVars("FANLORE_ENRICH"),
			Destination: &enableEnrich,
		},
	}
	flags = append(flags, mappingCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:  "build",
		Usage: "Build a knowledge graph from a Fandom wiki XML dump",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			if wikiURL == "" && dumpFile == "" {
				return goerr.New("either --wiki-url or --dump-file is required")
			}

			mapping, err := mappingCfg.Configure()
			if err != nil {
				return err
			}

			extractOpts := []extract.Option{extract.WithMapping(mapping)}
			if enableEnrich {
				llmClient, err := geminiCfg.Configure(ctx)
				if err != nil {
					return err
				}
				if llmClient == nil {
					return goerr.New("--enrich requires Gemini configuration (--gemini-project)")
				}
				enricher, err := enrich.New(llmClient)
				if err != nil {
					return err
				}
				extractOpts = append(extractOpts, extract.WithEnricher(enricher))
			}

			uc := usecase.NewBuildUseCase(
				usecase.WithExtractor(extract.New(extractOpts...)),
			)

			var result *usecase.BuildResult
			if dumpFile != "" {
				result, err = uc.BuildFromFile(ctx, dumpFile, output)
			} else {
				if workDir == "" {
					workDir, err = os.MkdirTemp("", "fanlore-*")
					if err != nil {
						return goerr.Wrap(err, "failed to create working directory")
					}
				}
				result, err = uc.BuildFromWiki(ctx, wikiURL, workDir, output)
			}
			if err != nil {
				return err
			}

			logger.Info("knowledge graph built",
				"pages", result.Pages,
				"entities", result.Entities,
				"relationships", result.Relationships,
				"output", result.OutputPath,
			)
			return nil
		},
	}
}
