package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// preprocessV2Bodies rewrites non-compliant Swagger v2 operations so
// kin-openapi can convert them to v3. Operations with multiple body
// parameters get them merged into a single body parameter whose schema is an
// object with one property per original parameter; the original required
// flags become the object's required-name set, which is what request-body
// synthesis consumes after conversion.
//
// It returns possibly-modified YAML bytes and a flag indicating whether
// modifications were made. On error, the original bytes are returned with
// modified=false.
func preprocessV2Bodies(data []byte) ([]byte, bool, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return data, false, err
	}
	paths, ok := doc["paths"].(map[string]any)
	if !ok || len(paths) == 0 {
		return data, false, nil
	}
	modified := false

	for _, pim := range paths {
		pi, ok := pim.(map[string]any)
		if !ok {
			continue
		}
		for method, opm := range pi {
			switch strings.ToLower(method) {
			case "get", "post", "put", "delete", "patch", "options", "head":
			default:
				continue
			}
			op, ok := opm.(map[string]any)
			if !ok {
				continue
			}
			params, ok := op["parameters"].([]any)
			if !ok || len(params) == 0 {
				continue
			}

			bodyCount := 0
			for _, p := range params {
				if pm, _ := p.(map[string]any); pm != nil && strings.EqualFold(asString(pm["in"]), "body") {
					bodyCount++
				}
			}
			if bodyCount < 2 {
				continue
			}

			props := map[string]any{}
			required := make([]any, 0)
			rest := make([]any, 0, len(params))
			for _, p := range params {
				pm, _ := p.(map[string]any)
				if pm == nil {
					continue
				}
				if !strings.EqualFold(asString(pm["in"]), "body") {
					rest = append(rest, p)
					continue
				}
				name := asString(pm["name"])
				if name == "" {
					name = "field"
				}
				schema := extractSchemaFromParam(pm)
				if schema == nil {
					schema = map[string]any{"type": "string"}
				}
				props[name] = schema
				if rb, _ := pm["required"].(bool); rb {
					required = append(required, name)
				}
				modified = true
			}
			bodySchema := map[string]any{"type": "object", "properties": props}
			if len(required) > 0 {
				bodySchema["required"] = required
			}
			merged := map[string]any{
				"in":     "body",
				"name":   "body",
				"schema": bodySchema,
			}
			op["parameters"] = append([]any{merged}, rest...)
		}
	}

	if !modified {
		return data, false, nil
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return data, false, err
	}
	return out, true, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// extractSchemaFromParam returns the body parameter's schema, synthesizing
// one from the v2 type/items/format fields when absent.
func extractSchemaFromParam(pm map[string]any) map[string]any {
	if sch, ok := pm["schema"].(map[string]any); ok {
		return sch
	}
	t, _ := pm["type"].(string)
	if t == "" {
		return nil
	}
	m := map[string]any{"type": t}
	if it, ok := pm["items"].(map[string]any); ok {
		m["items"] = it
	}
	if f, ok := pm["format"].(string); ok && f != "" {
		m["format"] = f
	}
	return m
}
