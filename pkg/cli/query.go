package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
)

func cmdQuery() *cli.Command {
	var graphPath string

	return &cli.Command{
		Name:      "query",
		Usage:     "Look up an entity in a saved knowledge graph, or show graph statistics",
		ArgsUsage: "[entity name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "graph",
				Aliases:     []string{"g"},
				Usage:       "Path to the graph document",
				Required:    true,
				Sources:     cli.EnvVars("FANLORE_GRAPH"),
				Destination: &graphPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			graph, err := kb.Load(ctx, graphPath)
			if err != nil {
				return err
			}
			uc := usecase.NewQueryUseCase(graph)

			if c.Args().Len() == 0 {
				return printJSON(uc.Stats(ctx))
			}

			report, err := uc.Entity(ctx, c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
