package ignore

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"

	"github.com/sirkon/resultful/internal/resrules"
)

const directive = "resultful:ignore"

// Entry tracks an ignore directive and its usage.
type Entry struct {
	pos     token.Pos              // Position of the ignore comment
	rules   []resrules.Rule        // List of rules (empty = all)
	unknown []string               // Names that are not rules
	used    map[resrules.Rule]bool // Track usage per rule
}

func (e *Entry) match(rule resrules.Rule) bool {
	if e == nil {
		return false
	}

	if len(e.rules) == 0 && len(e.unknown) == 0 {
		e.used[rule] = true
		return true
	}
	if slices.Contains(e.rules, rule) {
		e.used[rule] = true
		return true
	}

	return false
}

type fileLine struct {
	file string
	line int
}

// Index tracks ignore directives of a package.
type Index struct {
	fset    *token.FileSet
	lines   map[fileLine]*Entry
	funcs   *spans
	entries []*Entry
}

// New creates an empty index.
func New(fset *token.FileSet) *Index {
	return &Index{
		fset:  fset,
		lines: map[fileLine]*Entry{},
		funcs: newSpans(),
	}
}

// Add scans a file for ignore comments. Directives in a function doc
// comment cover the whole function, others their own and the next line.
func (x *Index) Add(file *ast.File) {
	docs := map[*ast.CommentGroup]*ast.FuncDecl{}
	for _, decl := range file.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Doc != nil {
			docs[fd.Doc] = fd
		}
	}

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			names, ok := parseComment(c.Text)
			if !ok {
				continue
			}

			entry := newEntry(c.Pos(), names)
			x.entries = append(x.entries, entry)

			if fd, ok := docs[cg]; ok {
				x.funcs.add(fd.Pos(), fd.End(), entry)
				continue
			}

			position := x.fset.Position(c.Pos())
			x.lines[fileLine{file: position.Filename, line: position.Line}] = entry
		}
	}
}

func newEntry(pos token.Pos, names []string) *Entry {
	e := &Entry{
		pos:  pos,
		used: map[resrules.Rule]bool{},
	}
	for _, name := range names {
		var rule resrules.Rule
		if err := rule.UnmarshalText([]byte(name)); err != nil {
			e.unknown = append(e.unknown, name)
			continue
		}
		e.rules = append(e.rules, rule)
	}

	return e
}

// parseComment parses an ignore directive and returns the rule names.
// Returns nil slice if no specific rules are specified (ignore all).
// Returns false if not an ignore comment.
//
// Supported formats:
//   - //resultful:ignore                    -> ignore all rules
//   - //resultful:ignore RES010             -> ignore specific rule
//   - //resultful:ignore RES010,RES030      -> ignore multiple rules
//   - //resultful:ignore - reason           -> ignore all with comment
//   - //resultful:ignore RES010 - reason    -> ignore specific with comment
func parseComment(text string) ([]string, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	rest, ok := strings.CutPrefix(text, directive)
	if !ok {
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// Something like //resultful:ignored.
		return nil, false
	}

	// Stop at comment markers.
	if idx := strings.Index(rest, " - "); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, " //"); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" || rest == "-" {
		return nil, true
	}

	var names []string
	for _, part := range strings.Split(rest, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names, true
}

// ShouldIgnore returns true if a finding of the rule at pos is suppressed.
// It checks the same line, the previous line and enclosing functions.
// When an ignore is used, it marks the entry as used for that rule.
func (x *Index) ShouldIgnore(pos token.Pos, rule resrules.Rule) bool {
	position := x.fset.Position(pos)
	if x.lines[fileLine{file: position.Filename, line: position.Line}].match(rule) {
		return true
	}
	if x.lines[fileLine{file: position.Filename, line: position.Line - 1}].match(rule) {
		return true
	}

	for _, entry := range x.funcs.find(pos) {
		if entry.match(rule) {
			return true
		}
	}

	return false
}

// Unused represents an unused ignore directive.
type Unused struct {
	Pos   token.Pos
	Rules []string // Unused rule names (empty if entire directive is unused)
}

// Unused returns ignore directives that were not used, ordered by position.
func (x *Index) Unused() []Unused {
	var res []Unused

	for _, entry := range x.entries {
		if len(entry.rules) == 0 && len(entry.unknown) == 0 {
			if len(entry.used) == 0 {
				res = append(res, Unused{Pos: entry.pos})
			}
			continue
		}

		var names []string
		for _, rule := range entry.rules {
			if !entry.used[rule] {
				names = append(names, rule.Code())
			}
		}
		names = append(names, entry.unknown...)
		if len(names) > 0 {
			res = append(res, Unused{Pos: entry.pos, Rules: names})
		}
	}

	slices.SortFunc(res, func(a, b Unused) int {
		return int(a.Pos) - int(b.Pos)
	})
	return res
}
