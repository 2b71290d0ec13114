package locate

import (
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

// CallFilter restricts a JavaScript locator to one argument of calls to a
// named function, e.g. Function "style" and Argument 1 for
// style("color", "#fff"). The zero value accepts every string.
type CallFilter struct {
	Function string
	Argument int
}

func (f CallFilter) enabled() bool {
	return f.Function != ""
}

// JavaScript locates the contents of string and template literals.
type JavaScript struct {
	Filter CallFilter
}

// Locate implements Locator. Sources that fail to parse return the parser
// error and no spans.
func (j *JavaScript) Locate(src string) ([]Span, error) {
	program, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return nil, err
	}

	w := &walker{visited: map[nodeKey]bool{}}
	if j.Filter.enabled() {
		w.visit = func(node any) {
			call, ok := node.(*ast.CallExpression)
			if !ok || calleeName(call.Callee) != j.Filter.Function {
				return
			}
			if j.Filter.Argument < 0 || j.Filter.Argument >= len(call.ArgumentList) {
				return
			}
			w.spans = append(w.spans, literalSpans(src, call.ArgumentList[j.Filter.Argument])...)
		}
	} else {
		w.visit = func(node any) {
			w.spans = append(w.spans, literalSpans(src, node)...)
		}
	}
	w.walk(reflect.ValueOf(program))

	sort.Slice(w.spans, func(a, b int) bool {
		return w.spans[a].Start < w.spans[b].Start
	})
	return w.spans, nil
}

// literalSpans returns the content spans of a string literal or of the
// static parts of a template literal.
func literalSpans(src string, node any) []Span {
	switch n := node.(type) {
	case *ast.StringLiteral:
		// Literal includes the quotes.
		start := offsetOf(n.Idx)
		if len(n.Literal) < 2 {
			return nil
		}
		return []Span{{Start: start + 1, End: start + len(n.Literal) - 1}}
	case *ast.TemplateLiteral:
		var spans []Span
		for _, el := range n.Elements {
			if el.Literal == "" {
				continue
			}
			if start, ok := templateElementStart(src, el); ok {
				spans = append(spans, Span{Start: start, End: start + len(el.Literal)})
			}
		}
		return spans
	}
	return nil
}

// offsetOf converts a parser index, which is 1-based when parsing without a
// file set, to a byte offset.
func offsetOf(idx file.Idx) int {
	return int(idx) - 1
}

// templateElementStart finds the byte offset of a template element. The
// parser records the offset just past the element's first character.
func templateElementStart(src string, el *ast.TemplateElement) (int, bool) {
	next := offsetOf(el.Idx)
	for w := 1; w <= utf8.UTFMax; w++ {
		start := next - w
		if start < 0 || start >= len(src) {
			break
		}
		if _, size := utf8.DecodeRuneInString(src[start:]); size == w && strings.HasPrefix(src[start:], el.Literal) {
			return start, true
		}
	}
	return 0, false
}

func calleeName(callee ast.Expression) string {
	switch c := callee.(type) {
	case *ast.Identifier:
		return c.Name.String()
	case *ast.DotExpression:
		return c.Identifier.Name.String()
	}
	return ""
}

var fileType = reflect.TypeOf((*file.File)(nil))

type nodeKey struct {
	t reflect.Type
	p uintptr
}

// walker visits every AST node reachable through exported fields. The
// goja AST has no visitor, and declaration lists alias nodes already in
// the body, so pointers are visited once.
type walker struct {
	visit   func(node any)
	visited map[nodeKey]bool
	spans   []Span
}

func (w *walker) walk(v reflect.Value) {
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			w.walk(v.Elem())
		}
	case reflect.Ptr:
		if v.IsNil() || v.Type() == fileType {
			return
		}
		key := nodeKey{t: v.Type(), p: v.Pointer()}
		if w.visited[key] {
			return
		}
		w.visited[key] = true
		if v.CanInterface() {
			w.visit(v.Interface())
		}
		w.walk(v.Elem())
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).IsExported() {
				w.walk(v.Field(i))
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			w.walk(v.Index(i))
		}
	}
}
