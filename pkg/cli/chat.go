package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fanlore-dev/fanlore/pkg/agent/tool"
	"github.com/fanlore-dev/fanlore/pkg/cli/config"
	"github.com/fanlore-dev/fanlore/pkg/kb"
	"github.com/fanlore-dev/fanlore/pkg/usecase"
)

func cmdChat() *cli.Command {
	var graphPath string
	var characterName string
	var siteName string
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "graph",
			Aliases:     []string{"g"},
			Usage:       "Path to the graph document",
			Required:    true,
			Sources:     cli.EnvVars("FANLORE_GRAPH"),
			Destination: &graphPath,
		},
		&cli.StringFlag{
			Name:        "character",
			Aliases:     []string{"c"},
			Usage:       "Name of the character to chat with (must exist in the graph)",
			Required:    true,
			Sources:     cli.EnvVars("FANLORE_CHARACTER"),
			Destination: &characterName,
		},
		&cli.StringFlag{
			Name:        "site-name",
			Usage:       "Name of the wiki universe, used in the persona prompt",
			Value:       "the wiki",
			Sources:     cli.EnvVars("FANLORE_SITE_NAME"),
			Destination: &siteName,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Chat with a character from a saved knowledge graph",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if llmClient == nil {
				return goerr.New("chat requires Gemini configuration (--gemini-project)")
			}

			graph, err := kb.Load(ctx, graphPath)
			if err != nil {
				return err
			}

			uc, err := usecase.NewChatUseCase(ctx, llmClient, graph, characterName, siteName)
			if err != nil {
				return err
			}

			return runChatLoop(ctx, uc)
		},
	}
}

var (
	promptColor    = color.New(color.FgCyan, color.Bold)
	characterColor = color.New(color.FgGreen, color.Bold)
	traceColor     = color.New(color.FgHiBlack)
)

// runChatLoop reads user messages from stdin until EOF or an exit command
func runChatLoop(ctx context.Context, uc *usecase.ChatUseCase) error {
	fmt.Printf("Chatting with %s. Type 'exit' to leave.\n\n", uc.CharacterName())

	ctx = tool.WithUpdate(ctx, func(_ context.Context, message string) {
		traceColor.Printf("  [%s]\n", message)
	})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("you> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		reply, err := uc.Send(ctx, message)
		if err != nil {
			return goerr.Wrap(err, "chat turn failed")
		}

		characterColor.Printf("%s> ", uc.CharacterName())
		fmt.Println(reply)
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}
