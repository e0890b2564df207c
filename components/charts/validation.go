package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidConfig marks configuration rejected by a chart schema.
	ErrInvalidConfig = errors.New("charts: invalid configuration")
	// ErrInvalidSchema marks a definition whose schema does not compile.
	ErrInvalidSchema = errors.New("charts: invalid schema")
)

// ConfigValidator checks a merged chart configuration before a provider runs.
type ConfigValidator interface {
	Validate(def Definition, config map[string]any) error
}

// ConfigProblem is one rejected configuration field.
type ConfigProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ConfigError lists every field of a chart configuration that failed its schema.
type ConfigError struct {
	Code     string
	Problems []ConfigProblem
}

func (e *ConfigError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Message)
	}
	return fmt.Sprintf("charts: configuration for %s is invalid: %s", e.Code, strings.Join(parts, "; "))
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// schemaSet keeps the compiled configuration schema of every registered chart.
type schemaSet struct {
	mu     sync.RWMutex
	byCode map[string]*jsonschema.Schema
}

func newSchemaSet() *schemaSet {
	return &schemaSet{byCode: map[string]*jsonschema.Schema{}}
}

// compileSchema compiles the schema carried by def. A definition without a
// schema accepts any configuration and yields nil.
func compileSchema(def Definition) (*jsonschema.Schema, error) {
	if len(def.Schema) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, def.Code, err)
	}
	schema, err := jsonschema.CompileString("chart://"+def.Code, string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, def.Code, err)
	}
	return schema, nil
}

func (s *schemaSet) put(code string, schema *jsonschema.Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if schema == nil {
		delete(s.byCode, code)
		return
	}
	s.byCode[code] = schema
}

func (s *schemaSet) validate(code string, config map[string]any) error {
	s.mu.RLock()
	schema, ok := s.byCode[code]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	payload, err := jsonPayload(config)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, code, err)
	}
	err = schema.Validate(payload)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, code, err)
	}
	return &ConfigError{Code: code, Problems: configProblems(verr)}
}

// jsonPayload turns provider-facing config (ints, json.Number, nested maps)
// into the plain JSON values the schema validator expects.
func jsonPayload(config map[string]any) (any, error) {
	if config == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// configProblems flattens the validation tree into its leaf failures.
func configProblems(root *jsonschema.ValidationError) []ConfigProblem {
	var out []ConfigProblem
	var walk func(*jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.Causes) == 0 {
			field := strings.TrimPrefix(v.InstanceLocation, "/")
			if field == "" {
				field = "config"
			}
			out = append(out, ConfigProblem{Field: field, Message: v.Message})
			return
		}
		for _, cause := range v.Causes {
			walk(cause)
		}
	}
	walk(root)
	slices.SortStableFunc(out, func(a, b ConfigProblem) int {
		return strings.Compare(a.Field, b.Field)
	})
	return out
}
