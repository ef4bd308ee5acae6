package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fanlore-dev/fanlore/pkg/agent/tool"
	"github.com/fanlore-dev/fanlore/pkg/agent/tool/core"
	"github.com/fanlore-dev/fanlore/pkg/domain/model"
	"github.com/fanlore-dev/fanlore/pkg/kb"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// ChatUseCase runs a persona chat session: the agent speaks as a character
// from the knowledge graph and uses graph query tools to recall facts.
type ChatUseCase struct {
	graph     *kb.KnowledgeGraph
	llmClient gollem.LLMClient
	character *model.Character
	agent     *gollem.Agent
}

// NewChatUseCase creates a chat session for the named character. The name
// must resolve to a Character entity in the graph.
func NewChatUseCase(ctx context.Context, llmClient gollem.LLMClient, graph *kb.KnowledgeGraph, characterName, siteName string) (*ChatUseCase, error) {
	entity, err := graph.GetEntityByName(characterName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve chat character", goerr.V("name", characterName))
	}
	character, ok := entity.(*model.Character)
	if !ok {
		return nil, goerr.Wrap(ErrNotACharacter, "cannot chat as this entity",
			goerr.V("name", characterName), goerr.V("type", entity.EntityType()))
	}

	systemPrompt, err := buildChatSystemPrompt(graph, character, siteName)
	if err != nil {
		return nil, err
	}

	agent := gollem.New(llmClient,
		gollem.WithSystemPrompt(systemPrompt),
		gollem.WithTools(core.New(graph)...),
		gollem.WithToolMiddleware(
			func(next gollem.ToolHandler) gollem.ToolHandler {
				return func(ctx context.Context, req *gollem.ToolExecRequest) (*gollem.ToolExecResponse, error) {
					tool.Update(ctx, fmt.Sprintf("using %s", req.Tool.Name))
					return next(ctx, req)
				}
			},
		),
	)

	return &ChatUseCase{
		graph:     graph,
		llmClient: llmClient,
		character: character,
		agent:     agent,
	}, nil
}

// CharacterName returns the name of the character the session speaks as
func (uc *ChatUseCase) CharacterName() string {
	return uc.character.Name
}

// Send passes a user message to the agent and returns the in-character
// reply. The agent keeps conversation history across calls.
func (uc *ChatUseCase) Send(ctx context.Context, message string) (string, error) {
	resp, err := uc.agent.Execute(ctx, gollem.Text(message))
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute chat agent",
			goerr.V("character", uc.character.Name))
	}
	return strings.Join(resp.Texts, "\n"), nil
}

// chatPromptRelationship is a relationship line for the system prompt
type chatPromptRelationship struct {
	Summary string
}

type chatPromptData struct {
	Name           string
	SiteName       string
	CharacterSheet string
	Relationships  []chatPromptRelationship
}

func buildChatSystemPrompt(graph *kb.KnowledgeGraph, character *model.Character, siteName string) (string, error) {
	sheet, err := model.MarshalEntity(character)
	if err != nil {
		return "", err
	}

	var relationships []chatPromptRelationship
	for _, r := range graph.Relationships(character.ID) {
		relationships = append(relationships, chatPromptRelationship{
			Summary: summarizeRelationship(graph, character, r),
		})
	}

	data := chatPromptData{
		Name:           character.Name,
		SiteName:       siteName,
		CharacterSheet: string(sheet),
		Relationships:  relationships,
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render chat system prompt")
	}
	return buf.String(), nil
}

func summarizeRelationship(graph *kb.KnowledgeGraph, character *model.Character, r *model.Relationship) string {
	otherID := r.TargetEntityID
	direction := "to"
	if r.TargetEntityID == character.ID {
		otherID = r.SourceEntityID
		direction = "from"
	}

	otherName := string(otherID)
	if other, err := graph.GetEntityByID(otherID); err == nil {
		otherName = other.Core().Name
	}

	summary := fmt.Sprintf("%s %s %s", r.RelationshipType, direction, otherName)
	if r.Depth != nil {
		if meaning := model.DepthMeaning(r.RelationshipType, *r.Depth); meaning != "" {
			summary += fmt.Sprintf(" (%s)", meaning)
		}
	}
	if r.Description != "" {
		summary += ": " + r.Description
	}
	return summary
}
