// Package enrich fills type-specific entity fields from raw wikitext with
// an LLM. It is an optional pipeline stage: without it, entities keep the
// empty defaults of their subtype.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fanlore-dev/fanlore/pkg/domain/interfaces"
)

// client implements interfaces.Enricher
type client struct {
	llmClient gollem.LLMClient
}

// New creates an enrichment service with the provided LLM client
func New(llmClient gollem.LLMClient) (interfaces.Enricher, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &client{llmClient: llmClient}, nil
}

// FillEntityFields extracts values for the requested fields from the page
// text. Fields the text does not support are returned as null and should be
// dropped by the caller.
func (c *client) FillEntityFields(ctx context.Context, text string, fields []string) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema(fields)),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(text, fields)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty response from LLM")
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(resp.Texts[0]), &values); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}
	return values, nil
}

const systemPrompt = "You are a wiki analysis assistant. Your task is to read the wikitext of a " +
	"fan wiki page and extract structured attribute values about the page's subject.\n\n" +
	"## Instructions:\n\n" +
	"1. Extract a value for each requested field, based only on what the text states.\n" +
	"2. Keep list fields as JSON arrays and mapping fields as JSON objects.\n" +
	"3. Use null for any field the text gives no information about. Never invent values.\n"

func buildUserPrompt(text string, fields []string) string {
	var sb strings.Builder

	sb.WriteString("Extract the following fields about the page's subject:\n\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	sb.WriteString("\n## Page wikitext:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n")

	return sb.String()
}

// fieldSchemas describes the known attribute fields. Unknown fields fall
// back to a plain string parameter.
var fieldSchemas = map[string]*gollem.Parameter{
	"aliases": {
		Type:        gollem.TypeArray,
		Description: "Alternative names the subject is known by",
		Items:       &gollem.Parameter{Type: gollem.TypeString},
	},
	"species": {
		Type:        gollem.TypeString,
		Description: "The species or race of the character",
	},
	"abilities": {
		Type:        gollem.TypeArray,
		Description: "Notable abilities or powers of the character",
		Items:       &gollem.Parameter{Type: gollem.TypeString},
	},
	"occupation": {
		Type:        gollem.TypeString,
		Description: "The character's occupation or role",
	},
	"physical_description": {
		Type:        gollem.TypeObject,
		Description: "Physical attributes as key-value pairs, e.g. hair or eye color",
	},
	"personality_traits": {
		Type:        gollem.TypeArray,
		Description: "Personality traits of the character",
		Items:       &gollem.Parameter{Type: gollem.TypeString},
	},
	"location_type": {
		Type:        gollem.TypeString,
		Description: "The kind of place, e.g. City, Planet, Building, Region",
	},
	"coordinates": {
		Type:        gollem.TypeString,
		Description: "In-universe coordinates or position of the place, if stated",
	},
	"event_type": {
		Type:        gollem.TypeString,
		Description: "The kind of event, e.g. Conflict or War, Feast, Era",
	},
	"object_type": {
		Type:        gollem.TypeString,
		Description: "The kind of object, e.g. Artifact, Weapon, Technology",
	},
}

// buildResponseSchema creates the JSON schema for structured output
func buildResponseSchema(fields []string) *gollem.Parameter {
	properties := make(map[string]*gollem.Parameter, len(fields))
	for _, f := range fields {
		if p, ok := fieldSchemas[f]; ok {
			properties[f] = p
		} else {
			properties[f] = &gollem.Parameter{
				Type:        gollem.TypeString,
				Description: "Value of the " + f + " field",
			}
		}
	}

	return &gollem.Parameter{
		Title:       "EntityFieldExtractionResponse",
		Description: "Attribute values extracted from the page wikitext",
		Type:        gollem.TypeObject,
		Properties:  properties,
	}
}
