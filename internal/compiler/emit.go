package compiler

import "github.com/zodgen/openapi2zod/internal/spec"

// TypeAlias derives one static type per named schema.
type TypeAlias struct {
	Name       string
	SchemaName string
}

// HandlerDecl parameterizes a handler type by the operation's synthesized
// schema names. Empty string marks an absent slot (no body, no response) or,
// for params, the empty object.
type HandlerDecl struct {
	Name         string
	Method       string
	Path         string
	RequestBody  string
	PathParams   string
	QueryParams  string
	ResponseBody string
}

// ClientDecl describes one client-function stub and its arguments shape. The
// literal method and path travel with the declaration; BaseURL is the
// document's first declared server.
type ClientDecl struct {
	Name         string
	ArgsName     string
	Method       string
	Path         string
	BaseURL      string
	RequestBody  string
	BodyRequired bool
	PathParams   string
	QueryParams  string
	ResponseBody string
}

// Options controls a compilation pass.
type Options struct {
	// SkipClients suppresses client-function declarations, which lifts the
	// requirement that the document declare at least one server.
	SkipClients bool
}

// Result is the complete, ordered output of one compilation: the NamedSchema
// set, one type alias per schema, and the handler/client declaration IR.
// Nothing is mutated after Compile returns.
type Result struct {
	Schemas  []NamedSchema
	Aliases  []TypeAlias
	Handlers []HandlerDecl
	Clients  []ClientDecl
}

// Compile runs the full single-pass transformation: synthesis, type aliases,
// then handler and client declarations in document order. Any error is
// terminal; there is no partial output.
func Compile(doc *spec.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, errValidation("nil document")
	}

	schemas, err := Synthesize(doc)
	if err != nil {
		return nil, err
	}

	res := &Result{Schemas: schemas}
	named := make(map[string]struct{}, len(schemas))
	for _, ns := range schemas {
		named[ns.Name] = struct{}{}
		res.Aliases = append(res.Aliases, TypeAlias{Name: ns.Name, SchemaName: ns.Name})
	}

	ops := operationsInOrder(doc)
	if len(ops) == 0 {
		// No paths: emission is a no-op, not an error.
		return res, nil
	}

	// lookup resolves a derived schema name against the synthesized set and
	// catches declarations referencing names the synthesizer never produced.
	lookup := func(name string) (string, error) {
		if _, ok := named[name]; !ok {
			return "", errCodeGen("declaration references unknown schema %q", name)
		}
		return name, nil
	}

	for _, op := range ops {
		method, path := string(op.Method), op.Path
		h := HandlerDecl{
			Name:   Derive(method, path, "Handler"),
			Method: method,
			Path:   path,
		}
		if op.RequestBody != nil && op.RequestBody.Schema != nil {
			if h.RequestBody, err = lookup(DeriveExported(method, path, suffixRequestBody)); err != nil {
				return nil, err
			}
		}
		if okJSONResponse(op) != nil {
			if h.ResponseBody, err = lookup(DeriveExported(method, path, suffixResponseBody)); err != nil {
				return nil, err
			}
		}
		if len(paramsByLocation(op.Parameters, "path")) > 0 {
			if h.PathParams, err = lookup(DeriveExported(method, path, suffixPathParams)); err != nil {
				return nil, err
			}
		}
		if len(paramsByLocation(op.Parameters, "query")) > 0 {
			if h.QueryParams, err = lookup(DeriveExported(method, path, suffixQueryParams)); err != nil {
				return nil, err
			}
		}
		res.Handlers = append(res.Handlers, h)
	}

	if opts.SkipClients {
		return res, nil
	}
	if len(doc.Servers) == 0 {
		return nil, errValidation("client generation requires at least one declared server")
	}
	baseURL := doc.Servers[0]

	for i, op := range ops {
		h := res.Handlers[i]
		method, path := string(op.Method), op.Path
		c := ClientDecl{
			Name:         Derive(method, path, ""),
			ArgsName:     DeriveExported(method, path, "Args"),
			Method:       method,
			Path:         path,
			BaseURL:      baseURL,
			RequestBody:  h.RequestBody,
			PathParams:   h.PathParams,
			QueryParams:  h.QueryParams,
			ResponseBody: h.ResponseBody,
		}
		if op.RequestBody != nil {
			c.BodyRequired = op.RequestBody.Required
		}
		res.Clients = append(res.Clients, c)
	}

	return res, nil
}
