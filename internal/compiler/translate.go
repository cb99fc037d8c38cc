package compiler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zodgen/openapi2zod/internal/spec"
)

// componentRefPrefix is the well-known prefix stripped from reference targets
// to resolve the component name.
const componentRefPrefix = "#/components/schemas/"

// Translate maps a schema-tree node to a validator expression. It is total
// over all node kinds: unknown kinds resolve to the permissive "accept any
// value" expression rather than erroring. The only failure mode is a default
// value whose runtime kind cannot be stringified.
func Translate(node *spec.SchemaNode) (*Expr, error) {
	return translateNode(node, "")
}

func translateNode(node *spec.SchemaNode, path string) (*Expr, error) {
	if node == nil {
		return &Expr{Kind: ExprAny}, nil
	}

	var e *Expr
	switch node.Kind {
	case spec.KindObject:
		props := make([]Prop, 0, len(node.Properties))
		required := make(map[string]struct{}, len(node.Required))
		for _, name := range node.Required {
			required[name] = struct{}{}
		}
		for _, p := range node.Properties {
			pe, err := translateNode(p.Schema, joinPath(path, p.Name))
			if err != nil {
				return nil, err
			}
			if _, ok := required[p.Name]; !ok {
				pe.Optional = true
			}
			props = append(props, Prop{Name: p.Name, Expr: pe})
		}
		e = &Expr{Kind: ExprObject, Props: props}

	case spec.KindArray:
		elem, err := translateNode(node.Items, joinPath(path, "[]"))
		if err != nil {
			return nil, err
		}
		e = &Expr{Kind: ExprArray, Elem: elem, MinItems: node.MinItems, MaxItems: node.MaxItems}

	case spec.KindEnum:
		e = &Expr{Kind: ExprEnum, Variants: append([]string(nil), node.Enum...)}

	case spec.KindString:
		e = &Expr{
			Kind:      ExprString,
			Format:    node.Format,
			Pattern:   node.Pattern,
			MinLength: node.MinLength,
			MaxLength: node.MaxLength,
		}

	case spec.KindNumber:
		e = &Expr{Kind: ExprNumber, Min: node.Min, Max: node.Max}

	case spec.KindInteger:
		e = &Expr{Kind: ExprInteger, Min: node.Min, Max: node.Max}

	case spec.KindBoolean:
		e = &Expr{Kind: ExprBoolean}

	case spec.KindRef:
		e = &Expr{Kind: ExprRef, Ref: refName(node.Ref)}

	default:
		e = &Expr{Kind: ExprAny}
	}

	e.Nullable = node.Nullable
	if node.HasDefault {
		lit, err := defaultLiteral(node.Default, path)
		if err != nil {
			return nil, err
		}
		e.HasDefault = true
		e.Default = lit
	}
	e.Description = node.Description
	return e, nil
}

// refName resolves a reference target against the component namespace. The
// reference may point at a schema not yet translated; the resulting deferred
// expression is evaluated at use-time, which keeps mutual recursion safe.
func refName(ref string) string {
	name := strings.TrimPrefix(ref, componentRefPrefix)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// defaultLiteral stringifies a default value into a literal token. Structured
// defaults are serialized into structurally equivalent literals, never echoed
// as live references. Any other runtime kind fails translation with a
// SchemaParseError naming the offending property.
func defaultLiteral(v any, path string) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case string:
		return strconv.Quote(val), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case []any:
		parts := make([]string, 0, len(val))
		for i, item := range val {
			lit, err := defaultLiteral(item, joinPath(path, strconv.Itoa(i)))
			if err != nil {
				return "", err
			}
			parts = append(parts, lit)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			lit, err := defaultLiteral(val[k], joinPath(path, k))
			if err != nil {
				return "", err
			}
			parts = append(parts, strconv.Quote(k)+": "+lit)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	default:
		where := path
		if where == "" {
			where = "(root)"
		}
		return "", errSchemaParse("property %q: unsupported default value kind %T", where, v)
	}
}

func joinPath(base, elem string) string {
	if base == "" {
		return elem
	}
	return base + "." + elem
}
