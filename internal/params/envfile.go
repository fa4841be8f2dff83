package params

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// ParseEnvFile parses content in .env format. Comments, quoting, the
// "export" prefix and ${VAR} expansion follow godotenv.
func ParseEnvFile(content []byte) (map[string]string, error) {
	values, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, fmt.Errorf("invalid env format: %w", err)
	}
	if _, ok := values[""]; ok {
		return nil, fmt.Errorf("invalid env format: empty key")
	}
	return values, nil
}

// LoadEnvFile reads and parses a single params file. Every name must be
// usable as a template variable.
func LoadEnvFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file %s: %w", path, err)
	}
	values, err := ParseEnvFile(content)
	if err != nil {
		return nil, fmt.Errorf("params file %s: %w", path, err)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("params file %s: %w", path, errors.Join(errs...))
	}
	return values, nil
}

// Load merges params files in order and then the key=value pairs on top.
// Any failure wraps whdeploy.ErrInvalidConfig.
func Load(files []string, pairs []string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, path := range files {
		values, err := LoadEnvFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", whdeploy.ErrInvalidConfig, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	cli, err := ParseKeyValuePairs(pairs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", whdeploy.ErrInvalidConfig, err)
	}
	for k, v := range cli {
		merged[k] = v
	}

	return merged, nil
}
