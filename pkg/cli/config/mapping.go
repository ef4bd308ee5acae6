package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/fanlore-dev/fanlore/pkg/domain/types"
	"github.com/fanlore-dev/fanlore/pkg/extract"
)

// Mapping holds the category-to-entity-type mapping configuration
type Mapping struct {
	path string
}

// MappingFile is the TOML document format for a custom category mapping:
//
//	[[mapping]]
//	category = "Characters"
//	entity_type = "Character"
type MappingFile struct {
	Mappings []MappingRule `toml:"mapping"`
}

// MappingRule maps one wiki category name to an entity type
type MappingRule struct {
	Category   string `toml:"category"`
	EntityType string `toml:"entity_type"`
}

// Validate checks the MappingRule fields
func (r *MappingRule) Validate() error {
	if r.Category == "" {
		return goerr.Wrap(ErrInvalidConfig, "mapping category is required")
	}
	if !types.EntityType(r.EntityType).IsValid() {
		return goerr.Wrap(ErrUnknownType, "mapping entity type is not recognized",
			goerr.V("category", r.Category), goerr.V("entityType", r.EntityType))
	}
	return nil
}

// Flags returns CLI flags for mapping configuration
func (m *Mapping) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "category-mapping",
			Usage:       "Path to a TOML file mapping wiki categories to entity types (optional)",
			Sources:     cli.EnvVars("FANLORE_CATEGORY_MAPPING"),
			Destination: &m.path,
		},
	}
}

// Configure returns the category mapping to use. Without a configured file
// it returns the built-in default mapping.
func (m *Mapping) Configure() (extract.CategoryMapping, error) {
	if m.path == "" {
		return extract.DefaultCategoryMapping(), nil
	}
	return LoadCategoryMapping(m.path)
}

// LoadCategoryMapping loads and validates a category mapping from a TOML file
func LoadCategoryMapping(path string) (extract.CategoryMapping, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read mapping file", goerr.V("path", path))
	}

	var file MappingFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML mapping", goerr.V("path", path))
	}
	if len(file.Mappings) == 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "mapping file has no rules", goerr.V("path", path))
	}

	mapping := extract.CategoryMapping{}
	for _, rule := range file.Mappings {
		if err := rule.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid mapping rule", goerr.V("path", path))
		}
		if _, ok := mapping[rule.Category]; ok {
			return nil, goerr.Wrap(ErrDuplicateMapping, "category mapped twice",
				goerr.V("path", path), goerr.V("category", rule.Category))
		}
		mapping[rule.Category] = types.EntityType(rule.EntityType)
	}
	return mapping, nil
}
