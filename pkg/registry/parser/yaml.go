package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"telescope-hq/callisto/pkg/registry/defs"
)

// decodeNode converts a yaml.Node into the plain document-object model:
// map[string]any, []any, string, int64, float64, bool, or nil.
//
// Mapping keys must be strings; anything else is a syntax-level error
// because registry entries are keyed by identifier.
func decodeNode(node *yaml.Node, source string) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0], source)

	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return nil, fmt.Errorf("%s:%d: mapping key is not a string: %w", source, keyNode.Line, err)
			}
			val, err := decodeNode(node.Content[i+1], source)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil

	case yaml.SequenceNode:
		s := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := decodeNode(child, source)
			if err != nil {
				return nil, err
			}
			s = append(s, val)
		}
		return s, nil

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, node.Line, err)
		}
		// Normalize ints to int64 so the validator sees one integer type.
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil

	case yaml.AliasNode:
		return decodeNode(node.Alias, source)

	default:
		return nil, fmt.Errorf("%s:%d: unsupported YAML node kind %d", source, node.Line, node.Kind)
	}
}

// collectLocations walks the top one or two mapping levels of a document
// and records the source location of every entry key. Metrics documents
// are two-level (category, then name); ping documents are one-level.
func collectLocations(node *yaml.Node, source string, loc map[string]defs.Location) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		loc[key] = defs.Location{File: source, Line: keyNode.Line, Column: keyNode.Column}
		if valNode.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(valNode.Content); j += 2 {
			inner := valNode.Content[j]
			loc[key+"/"+inner.Value] = defs.Location{File: source, Line: inner.Line, Column: inner.Column}
		}
	}
}
