package spec

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const jsonMime = "application/json"

// BuildOption configures how the Document is built from an OpenAPI doc.
type BuildOption func(*buildConfig)

type buildConfig struct {
	includeTags map[string]struct{}
	excludeTags map[string]struct{}
	methods     map[HttpMethod]struct{}
	pathRes     []*regexp.Regexp
}

// WithIncludeTags keeps only operations that have at least one of the given tags.
func WithIncludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		if len(tags) == 0 {
			return
		}
		if c.includeTags == nil {
			c.includeTags = make(map[string]struct{}, len(tags))
		}
		for _, t := range tags {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			c.includeTags[t] = struct{}{}
		}
	}
}

// WithExcludeTags removes operations that have any of the given tags.
func WithExcludeTags(tags []string) BuildOption {
	return func(c *buildConfig) {
		if len(tags) == 0 {
			return
		}
		if c.excludeTags == nil {
			c.excludeTags = make(map[string]struct{}, len(tags))
		}
		for _, t := range tags {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			c.excludeTags[t] = struct{}{}
		}
	}
}

// WithMethods keeps only operations using one of the provided HTTP methods.
func WithMethods(methods []HttpMethod) BuildOption {
	return func(c *buildConfig) {
		if len(methods) == 0 {
			return
		}
		if c.methods == nil {
			c.methods = make(map[HttpMethod]struct{}, len(methods))
		}
		for _, m := range methods {
			c.methods[m] = struct{}{}
		}
	}
}

// WithPathPatterns keeps only operations whose path matches at least one of
// the provided regular expressions.
func WithPathPatterns(patterns []string) BuildOption {
	return func(c *buildConfig) {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			re, err := regexp.Compile(p)
			if err != nil {
				// Invalid patterns become a sentinel that never matches.
				re = regexp.MustCompile("a^$")
			}
			c.pathRes = append(c.pathRes, re)
		}
	}
}

// BuildDocument converts an OpenAPI v3 document into the normalized Document
// model. Component names and paths are ordered lexically so the same input
// always produces the same Document; method order within a path is fixed.
func BuildDocument(ctx context.Context, doc *openapi3.T, opts ...BuildOption) (*Document, error) {
	_ = ctx
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	cfg := &buildConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &Document{
		Title:   safeStr(doc.Info.Title),
		Version: safeStr(doc.Info.Version),
	}

	for _, s := range doc.Servers {
		if s == nil || safeStr(s.URL) == "" {
			continue
		}
		d.Servers = append(d.Servers, safeStr(s.URL))
	}

	if doc.Components != nil && doc.Components.Schemas != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			node := toSchemaNode(doc.Components.Schemas[name])
			if node == nil {
				continue
			}
			d.Components = append(d.Components, NamedComponent{Name: name, Schema: node})
		}
	}

	if doc.Paths != nil {
		pathKeys := make([]string, 0, len(doc.Paths))
		for p := range doc.Paths {
			pathKeys = append(pathKeys, p)
		}
		sort.Strings(pathKeys)

		for _, p := range pathKeys {
			item := doc.Paths[p]
			if item == nil {
				continue
			}
			baseParams := toParameters(item.Parameters)

			ops := []struct {
				m HttpMethod
				o *openapi3.Operation
			}{
				{GET, item.Get},
				{POST, item.Post},
				{PUT, item.Put},
				{DELETE, item.Delete},
				{PATCH, item.Patch},
				{HEAD, item.Head},
				{OPTIONS, item.Options},
				{TRACE, item.Trace},
			}

			pi := PathItem{Path: p}
			for _, pair := range ops {
				if pair.o == nil {
					continue
				}
				if len(cfg.methods) > 0 {
					if _, ok := cfg.methods[pair.m]; !ok {
						continue
					}
				}
				if len(cfg.pathRes) > 0 && !matchesAny(cfg.pathRes, p) {
					continue
				}

				tags := make([]string, 0, len(pair.o.Tags))
				for _, t := range pair.o.Tags {
					if t = strings.TrimSpace(t); t != "" {
						tags = append(tags, t)
					}
				}
				if !allowByTags(tags, cfg) {
					continue
				}

				op := Operation{
					Method:      pair.m,
					Path:        p,
					Summary:     safeStr(pair.o.Summary),
					Description: safeStr(pair.o.Description),
					Tags:        tags,
					Parameters:  mergeParameters(baseParams, toParameters(pair.o.Parameters)),
				}

				if rb := pair.o.RequestBody; rb != nil && rb.Value != nil {
					body := &RequestBody{Required: rb.Value.Required}
					if mt := rb.Value.Content[jsonMime]; mt != nil {
						body.Schema = toSchemaNode(mt.Schema)
					}
					op.RequestBody = body
				}

				if pair.o.Responses != nil {
					codes := make([]string, 0, len(pair.o.Responses))
					for code := range pair.o.Responses {
						codes = append(codes, code)
					}
					sort.Strings(codes)
					for _, code := range codes {
						rref := pair.o.Responses[code]
						if rref == nil || rref.Value == nil {
							continue
						}
						r := Response{Status: code}
						if rref.Value.Description != nil {
							r.Description = safeStr(*rref.Value.Description)
						}
						if mt := rref.Value.Content[jsonMime]; mt != nil {
							r.Schema = toSchemaNode(mt.Schema)
						}
						op.Responses = append(op.Responses, r)
					}
				}

				pi.Operations = append(pi.Operations, op)
			}
			if len(pi.Operations) > 0 {
				d.Paths = append(d.Paths, pi)
			}
		}
	}

	return d, nil
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func allowByTags(tags []string, cfg *buildConfig) bool {
	if len(cfg.includeTags) > 0 {
		ok := false
		for _, t := range tags {
			if _, yes := cfg.includeTags[t]; yes {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(cfg.excludeTags) > 0 {
		for _, t := range tags {
			if _, blocked := cfg.excludeTags[t]; blocked {
				return false
			}
		}
	}
	return true
}

func safeStr(s string) string { return strings.TrimSpace(s) }

// toParameters keeps path and query parameters in declared order; other
// locations are not modeled.
func toParameters(refs openapi3.Parameters) []Parameter {
	var out []Parameter
	for _, pref := range refs {
		if pref == nil || pref.Value == nil {
			continue
		}
		p := pref.Value
		in := safeStr(p.In)
		if in != "path" && in != "query" {
			continue
		}
		out = append(out, Parameter{
			Name:        safeStr(p.Name),
			In:          in,
			Required:    p.Required,
			Description: safeStr(p.Description),
			Schema:      toSchemaNode(p.Schema),
		})
	}
	return out
}

// mergeParameters overlays operation-level parameters on path-level ones.
// Overrides replace in place; new parameters append, so declaration order is
// preserved for both levels.
func mergeParameters(base, overrides []Parameter) []Parameter {
	merged := append([]Parameter(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i, b := range merged {
			if b.In == o.In && b.Name == o.Name {
				merged[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}
	return merged
}

// toSchemaNode converts a kin-openapi schema (or reference) into a SchemaNode
// tree. Property names are ordered lexically because the upstream parser
// stores them in a map; that order is then preserved through compilation.
func toSchemaNode(ref *openapi3.SchemaRef) *SchemaNode {
	if ref == nil {
		return nil
	}
	if ref.Ref != "" {
		return &SchemaNode{Kind: KindRef, Ref: ref.Ref}
	}
	v := ref.Value
	if v == nil {
		return nil
	}

	node := &SchemaNode{
		Nullable:    v.Nullable,
		Description: safeStr(v.Description),
		Format:      safeStr(v.Format),
		Pattern:     v.Pattern,
	}
	if v.Default != nil {
		node.HasDefault = true
		node.Default = v.Default
	}

	switch {
	case len(v.Enum) > 0:
		node.Kind = KindEnum
		for _, ev := range v.Enum {
			if s, ok := ev.(string); ok {
				node.Enum = append(node.Enum, s)
			} else {
				node.Enum = append(node.Enum, fmt.Sprint(ev))
			}
		}
	case v.Type == "string":
		node.Kind = KindString
		if v.MinLength > 0 {
			ml := v.MinLength
			node.MinLength = &ml
		}
		node.MaxLength = v.MaxLength
	case v.Type == "number":
		node.Kind = KindNumber
		node.Min = v.Min
		node.Max = v.Max
	case v.Type == "integer":
		node.Kind = KindInteger
		node.Min = v.Min
		node.Max = v.Max
	case v.Type == "boolean":
		node.Kind = KindBoolean
	case v.Type == "array":
		node.Kind = KindArray
		node.Items = toSchemaNode(v.Items)
		if v.MinItems > 0 {
			mi := v.MinItems
			node.MinItems = &mi
		}
		node.MaxItems = v.MaxItems
	case v.Type == "object" || len(v.Properties) > 0:
		node.Kind = KindObject
		names := make([]string, 0, len(v.Properties))
		for name := range v.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			child := toSchemaNode(v.Properties[name])
			if child == nil {
				continue
			}
			node.Properties = append(node.Properties, Property{Name: name, Schema: child})
		}
		node.Required = append([]string(nil), v.Required...)
	default:
		// Unknown shape: Kind stays zero and the translator emits the
		// permissive expression.
	}

	return node
}
