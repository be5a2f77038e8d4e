package tracing

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Config describes what is a result type, how it is used and how deep paths are explored.
type Config struct {
	// ResultTypes are generic or plain named types to be checked.
	ResultTypes []Reference `yaml:"result_types"`

	// Validate, Data and Error are method names of the result types.
	Validate string `yaml:"validate"`
	Data     string `yaml:"data"`
	Error    string `yaml:"error"`

	// Terminators are functions or methods terminating the process, in addition to the predefined ones.
	Terminators []Reference `yaml:"terminators"`

	// AllowList are types whose methods may terminate the process even when they return a result.
	AllowList []Reference `yaml:"allow_list"`

	// PanicTerminates makes the panic builtin count as process termination.
	PanicTerminates bool `yaml:"panic_terminates"`

	MaxPaths  int `yaml:"max_paths"`
	MaxDepth  int `yaml:"max_depth"`
	LoopBound int `yaml:"loop_bound"`
}

// Check checks the config is usable.
func (c *Config) Check() error {
	if len(c.ResultTypes) == 0 {
		return errors.New("result_types: at least one result type is required")
	}
	for i, ref := range c.ResultTypes {
		if ref.Type != "" {
			return fmt.Errorf("result_types[%d]: %s must be a type reference, not a method", i, ref)
		}
	}
	for i, ref := range c.AllowList {
		if ref.Type != "" {
			return fmt.Errorf("allow_list[%d]: %s must be a type reference, not a method", i, ref)
		}
	}

	names := map[string]string{
		"validate": c.Validate,
		"data":     c.Data,
		"error":    c.Error,
	}
	seen := map[string]string{}
	for _, field := range []string{"validate", "data", "error"} {
		name := names[field]
		if !isIdent(name) {
			return fmt.Errorf("%s: invalid method name %q", field, name)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s: method %q is already used for %s", field, name, prev)
		}
		seen[name] = field
	}

	if c.MaxPaths <= 0 {
		return fmt.Errorf("max_paths: must be positive, got %d", c.MaxPaths)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth: must not be negative, got %d", c.MaxDepth)
	}
	if c.LoopBound <= 0 {
		return fmt.Errorf("loop_bound: must be positive, got %d", c.LoopBound)
	}

	return nil
}

// CalleeKind tells what a call does to a result.
type CalleeKind int

const (
	CalleeUnrelated CalleeKind = iota
	CalleeProduces
	CalleeValidates
	CalleeAccessesData
	CalleeAccessesError
	CalleeTerminates
	CalleeCheckWrapper
)

var calleeKindValueMap = map[CalleeKind]string{
	CalleeUnrelated:     "unrelated",
	CalleeProduces:      "produces",
	CalleeValidates:     "validates",
	CalleeAccessesData:  "data",
	CalleeAccessesError: "error",
	CalleeTerminates:    "terminates",
	CalleeCheckWrapper:  "check-wrapper",
}

func (k CalleeKind) String() string {
	v, ok := calleeKindValueMap[k]
	if !ok {
		return fmt.Sprintf("callee-kind-invalid(%d)", int(k))
	}

	return v
}

// Reference points to a package level entity: "pkg/path".Name or "pkg/path".Type.Name.
type Reference struct {
	Package string
	Type    string
	Name    string
}

var _ encoding.TextUnmarshaler = (*Reference)(nil)

func (r *Reference) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "" {
		return errors.New("empty reference")
	}

	if !strings.HasPrefix(s, `"`) {
		return fmt.Errorf("reference must start with quoted package: %q", s)
	}
	end := strings.Index(s[1:], `"`)
	if end < 0 {
		return fmt.Errorf("unterminated quoted package in reference: %q", s)
	}
	end++

	pkg := s[1:end]
	if pkg == "" {
		return fmt.Errorf("package cannot be empty in reference: %q", s)
	}

	rest := s[end+1:]
	if !strings.HasPrefix(rest, ".") {
		return fmt.Errorf("reference must contain a name: %q", s)
	}
	rest = rest[1:]

	parts := strings.Split(rest, ".")
	if len(parts) > 2 {
		return fmt.Errorf("reference must have 1 or 2 identifiers after package: %q", s)
	}
	for _, p := range parts {
		if !isIdent(p) {
			return fmt.Errorf("invalid identifier %q in reference %q", p, s)
		}
	}

	r.Package = pkg
	switch len(parts) {
	case 1:
		r.Type = ""
		r.Name = parts[0]
	case 2:
		r.Type = parts[0]
		r.Name = parts[1]
	}

	return nil
}

func (r Reference) MarshalText() ([]byte, error) {
	if r.Package == "" {
		return nil, errors.New("cannot marshal Reference: empty Package")
	}
	if r.Name == "" {
		return nil, errors.New("cannot marshal Reference: empty Name")
	}

	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(r.Package)
	b.WriteString(`".`)
	if r.Type != "" {
		b.WriteString(r.Type)
		b.WriteByte('.')
	}
	b.WriteString(r.Name)

	return []byte(b.String()), nil
}

func (r Reference) String() string {
	v, err := r.MarshalText()
	if err != nil {
		return fmt.Sprintf("reference-invalid(%s.%s.%s)", r.Package, r.Type, r.Name)
	}

	return string(v)
}

// qualified returns the reference in the form types.Object paths are compared with:
// pkg/path.Name or pkg/path.Type.Name.
func (r Reference) qualified() string {
	if r.Type == "" {
		return r.Package + "." + r.Name
	}

	return r.Package + "." + r.Type + "." + r.Name
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
