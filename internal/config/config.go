// Package config resolves one environment's variables from the deployment manifest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// ConfigurationsKey is the top-level manifest key holding the environments.
const ConfigurationsKey = "configurations"

// manifest mirrors the document layout. The environments are kept as a raw
// node so each environment's key order survives decoding.
type manifest struct {
	Configurations yaml.Node `yaml:"configurations"`
}

// Configuration is a flat, read-only set of template variables for one
// environment. Keys keep the order they have in the manifest.
type Configuration struct {
	keys   []string
	values map[string]any
}

// NewConfiguration builds a Configuration from ordered keys and their values.
// Keys missing from values are set to nil.
func NewConfiguration(keys []string, values map[string]any) *Configuration {
	c := &Configuration{values: make(map[string]any, len(keys))}
	for _, k := range keys {
		c.set(k, values[k])
	}
	return c
}

func (c *Configuration) set(key string, value any) {
	if _, exists := c.values[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Keys returns the variable names in manifest order.
func (c *Configuration) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the value for key and whether it is defined.
func (c *Configuration) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of variables.
func (c *Configuration) Len() int { return len(c.keys) }

// Values returns a copy of the variables, ready for template rendering.
func (c *Configuration) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// With returns a new Configuration with overrides applied on top.
// Existing keys keep their position; new keys are appended in the order given
// by keys. Only keys listed in keys are applied.
func (c *Configuration) With(keys []string, overrides map[string]string) *Configuration {
	out := NewConfiguration(c.keys, c.values)
	for _, k := range keys {
		if v, ok := overrides[k]; ok {
			out.set(k, v)
		}
	}
	return out
}

// Resolve loads the manifest at manifestPath and returns the configuration of
// environment. The lookup is exact; callers normalize the name beforehand.
//
// Errors:
//   - whdeploy.ErrManifestNotFound when the file does not exist
//   - whdeploy.ErrManifestParse when the document is malformed
//   - whdeploy.ErrConfigNotFound when the environment is not declared
func Resolve(manifestPath, environment string) (*Configuration, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", whdeploy.ErrManifestNotFound, manifestPath)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}
	return Parse(data, environment)
}

// Parse resolves environment from manifest content.
// Anchors, aliases and "<<" merge keys are resolved the way a YAML loader
// builds a plain mapping: local keys win over merged ones, and among merged
// sources the earlier one wins.
func Parse(data []byte, environment string) (*Configuration, error) {
	envs, err := environmentPairs(data)
	if err != nil {
		return nil, err
	}

	// the last declaration of a duplicated environment wins
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].key == environment {
			return decodeEnvironment(environment, envs[i].value)
		}
	}

	return nil, fmt.Errorf("%w: %q", whdeploy.ErrConfigNotFound, environment)
}

// Environments lists the environment names declared in the manifest, in document order.
func Environments(data []byte) ([]string, error) {
	envs, err := environmentPairs(data)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]bool, len(envs))
	for _, p := range envs {
		if !seen[p.key] {
			seen[p.key] = true
			names = append(names, p.key)
		}
	}
	return names, nil
}

// environmentPairs returns the flattened entries of the configurations
// mapping. A document without environments yields no pairs.
func environmentPairs(data []byte) ([]pair, error) {
	var doc manifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", whdeploy.ErrManifestParse, err)
	}

	envs := resolveAlias(&doc.Configurations)
	if envs.Kind == 0 || isNull(envs) {
		return nil, nil
	}
	if envs.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q must be a mapping of environments (line %d)",
			whdeploy.ErrManifestParse, ConfigurationsKey, envs.Line)
	}
	return flatten(envs)
}

func decodeEnvironment(environment string, node *yaml.Node) (*Configuration, error) {
	node = resolveAlias(node)
	if isNull(node) {
		return NewConfiguration(nil, nil), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: environment %q must be a mapping (line %d)",
			whdeploy.ErrManifestParse, environment, node.Line)
	}

	pairs, err := flatten(node)
	if err != nil {
		return nil, fmt.Errorf("environment %q: %w", environment, err)
	}

	cfg := &Configuration{values: make(map[string]any, len(pairs))}
	for _, p := range pairs {
		var value any
		if err := p.value.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: environment %q key %q: %v",
				whdeploy.ErrManifestParse, environment, p.key, err)
		}
		cfg.set(p.key, value)
	}
	return cfg, nil
}
