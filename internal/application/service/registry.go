package service

import (
	"fmt"
	"sort"
	"strings"

	"math-agent/internal/application/port/output"
	"math-agent/internal/domain/entity"

	"github.com/xeipuuv/gojsonschema"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

type registeredTool struct {
	def    entity.ToolDefinition
	schema *gojsonschema.Schema
}

type ToolRegistryImpl struct {
	tools map[entity.ToolName]registeredTool
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]registeredTool),
	}
}

// Register compiles the tool's parameter schema; a definition whose schema
// does not compile is rejected.
func (r *ToolRegistryImpl) Register(def entity.ToolDefinition) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def.Parameters))
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", def.Name, err)
	}
	r.tools[def.Name] = registeredTool{def: def, schema: schema}
	return nil
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (entity.ToolDefinition, bool) {
	tool, ok := r.tools[name]
	return tool.def, ok
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool.def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Validate checks raw JSON arguments against the tool's schema.
func (r *ToolRegistryImpl) Validate(name entity.ToolName, arguments string) error {
	tool, ok := r.tools[name]
	if !ok {
		return &entity.UnknownToolError{Name: name.String()}
	}

	result, err := tool.schema.Validate(gojsonschema.NewStringLoader(arguments))
	if err != nil {
		return fmt.Errorf("validate %s arguments: %w", name, err)
	}

	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("invalid %s arguments: %s", name, strings.Join(problems, "; "))
	}

	return nil
}
