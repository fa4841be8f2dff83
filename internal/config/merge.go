package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// maxAliasDepth bounds alias chains and nested merges.
const maxAliasDepth = 64

// pair is one key of a mapping node after merge keys are expanded.
type pair struct {
	key   string
	value *yaml.Node
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for i := 0; node != nil && node.Kind == yaml.AliasNode && i < maxAliasDepth; i++ {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" &&
		(node.Tag == "!!merge" || node.Tag == "")
}

// flatten lists the entries of a mapping node with "<<" merge keys expanded.
// Merged entries come first, so when the caller applies the pairs in order a
// key keeps its first position and the local value is applied last.
func flatten(node *yaml.Node) ([]pair, error) {
	return flattenDepth(node, 0)
}

func flattenDepth(node *yaml.Node, depth int) ([]pair, error) {
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("%w: merge keys nested too deeply (line %d)", whdeploy.ErrManifestParse, node.Line)
	}

	var merged, local []pair
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if !isMergeKey(key) {
			local = append(local, pair{key: key.Value, value: value})
			continue
		}

		sources, err := mergeSources(resolveAlias(value))
		if err != nil {
			return nil, err
		}
		// applied last-to-first so the earliest source overwrites the later ones
		for j := len(sources) - 1; j >= 0; j-- {
			pairs, err := flattenDepth(sources[j], depth+1)
			if err != nil {
				return nil, err
			}
			merged = append(merged, pairs...)
		}
	}
	return append(merged, local...), nil
}

// mergeSources returns the mappings named by a merge value: one mapping or a
// sequence of mappings.
func mergeSources(value *yaml.Node) ([]*yaml.Node, error) {
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}, nil
	case yaml.SequenceNode:
		sources := make([]*yaml.Node, 0, len(value.Content))
		for _, item := range value.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: merge sequence entries must be mappings (line %d)",
					whdeploy.ErrManifestParse, item.Line)
			}
			sources = append(sources, item)
		}
		return sources, nil
	default:
		return nil, fmt.Errorf("%w: merge value must be a mapping or a sequence of mappings (line %d)",
			whdeploy.ErrManifestParse, value.Line)
	}
}
