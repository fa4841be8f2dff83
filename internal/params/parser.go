package params

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// namePattern matches the variable names a template can reference.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName reports whether name can be used as a template variable.
// Keys such as "my-schema" or "db.name" would be stored but could never be
// referenced as {{ name }}.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("empty variable name")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%q is not a valid template variable name (use letters, digits and '_', not starting with a digit)", name)
	}
	return nil
}

// ParseKeyValuePairs turns --param values ("schema=analytics") into
// overrides. The first '=' separates name and value, so values may contain
// '='. A repeated name keeps its last value. Every malformed pair is
// reported, not only the first.
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	var errs []error

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			errs = append(errs, fmt.Errorf("--param %q: expected name=value (example: --param schema=analytics)", pair))
			continue
		}
		name = strings.TrimSpace(name)
		if err := ValidateName(name); err != nil {
			errs = append(errs, fmt.Errorf("--param %q: %w", pair, err))
			continue
		}
		overrides[name] = value
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return overrides, nil
}
