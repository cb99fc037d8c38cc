package compiler

import "github.com/zodgen/openapi2zod/internal/spec"

// Suffix tokens appended to derived operation names.
const (
	suffixRequestBody  = "RequestBody"
	suffixResponseBody = "ResponseBody"
	suffixPathParams   = "PathParams"
	suffixQueryParams  = "QueryParams"
)

// Synthesize builds the full NamedSchema set for a document: component
// schemas first (document order, no suffix), then per operation the request
// body, "200" JSON response body, path params, and query params schemas that
// the operation implies. The set is built once, in full; names must be unique
// within the compilation.
func Synthesize(doc *spec.Document) ([]NamedSchema, error) {
	var out []NamedSchema
	seen := make(map[string]struct{})

	add := func(ns NamedSchema) error {
		if _, dup := seen[ns.Name]; dup {
			return errCodeGen("duplicate schema name %q", ns.Name)
		}
		seen[ns.Name] = struct{}{}
		out = append(out, ns)
		return nil
	}

	for _, c := range doc.Components {
		e, err := Translate(c.Schema)
		if err != nil {
			return nil, err
		}
		if err := add(NamedSchema{Name: c.Name, Expr: e, Provenance: ProvenanceComponent}); err != nil {
			return nil, err
		}
	}

	for _, op := range operationsInOrder(doc) {
		method, path := string(op.Method), op.Path

		if body := op.RequestBody; body != nil && body.Schema != nil {
			e, err := Translate(body.Schema)
			if err != nil {
				return nil, err
			}
			ns := NamedSchema{
				Name:       DeriveExported(method, path, suffixRequestBody),
				Expr:       e,
				Provenance: ProvenanceRequestBody,
			}
			if err := add(ns); err != nil {
				return nil, err
			}
		}

		if res := okJSONResponse(op); res != nil {
			e, err := Translate(res)
			if err != nil {
				return nil, err
			}
			ns := NamedSchema{
				Name:       DeriveExported(method, path, suffixResponseBody),
				Expr:       e,
				Provenance: ProvenanceResponseBody,
			}
			if err := add(ns); err != nil {
				return nil, err
			}
		}

		if params := paramsByLocation(op.Parameters, "path"); len(params) > 0 {
			e, err := translateParams(params)
			if err != nil {
				return nil, err
			}
			ns := NamedSchema{
				Name:       DeriveExported(method, path, suffixPathParams),
				Expr:       e,
				Provenance: ProvenancePathParams,
			}
			if err := add(ns); err != nil {
				return nil, err
			}
		}

		if params := paramsByLocation(op.Parameters, "query"); len(params) > 0 {
			e, err := translateParams(params)
			if err != nil {
				return nil, err
			}
			ns := NamedSchema{
				Name:       DeriveExported(method, path, suffixQueryParams),
				Expr:       e,
				Provenance: ProvenanceQueryParams,
			}
			if err := add(ns); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// operationsInOrder flattens the document's operations: path order first,
// then declared method order within each path.
func operationsInOrder(doc *spec.Document) []spec.Operation {
	var ops []spec.Operation
	for _, pi := range doc.Paths {
		ops = append(ops, pi.Operations...)
	}
	return ops
}

// okJSONResponse returns the schema of the operation's "200" JSON response,
// or nil. Other status codes and content types are not modeled.
func okJSONResponse(op spec.Operation) *spec.SchemaNode {
	for _, r := range op.Responses {
		if r.Status == "200" && r.Schema != nil {
			return r.Schema
		}
	}
	return nil
}
