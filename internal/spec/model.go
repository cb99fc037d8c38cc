package spec

// Normalized document model consumed by the compiler. All collections are
// ordered slices; declaration order is significant and must survive
// normalization so compilation output stays deterministic.

type HttpMethod string

const (
	GET     HttpMethod = "get"
	POST    HttpMethod = "post"
	PUT     HttpMethod = "put"
	DELETE  HttpMethod = "delete"
	PATCH   HttpMethod = "patch"
	HEAD    HttpMethod = "head"
	OPTIONS HttpMethod = "options"
	TRACE   HttpMethod = "trace"
)

// Kind discriminates SchemaNode variants. The zero value means the node's
// shape is unknown; the translator maps it to the permissive expression.
type Kind string

const (
	KindString  Kind = "string"
	KindEnum    Kind = "enum"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindRef     Kind = "ref"
)

// Document is the read-only input of one compilation pass.
type Document struct {
	Title      string
	Version    string
	Servers    []string
	Components []NamedComponent
	Paths      []PathItem
}

// NamedComponent is one reusable schema from the component namespace.
type NamedComponent struct {
	Name   string
	Schema *SchemaNode
}

// PathItem groups the operations declared under one path, in method order.
type PathItem struct {
	Path       string
	Operations []Operation
}

type Operation struct {
	Method      HttpMethod
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	RequestBody *RequestBody
	Responses   []Response
}

// Parameter is distinct from an object property: its own Required flag, not a
// parent required-name set, governs the optional wrapper.
type Parameter struct {
	Name        string
	In          string // path|query
	Required    bool
	Description string
	Schema      *SchemaNode
}

// RequestBody carries the JSON body schema when one is declared. Schema is nil
// when the operation declares no JSON content.
type RequestBody struct {
	Required bool
	Schema   *SchemaNode
}

type Response struct {
	Status      string
	Description string
	Schema      *SchemaNode // JSON content only; nil otherwise
}

// SchemaNode is one unit of the recursive shape-description tree.
type SchemaNode struct {
	Kind        Kind
	Nullable    bool
	HasDefault  bool
	Default     any
	Description string

	// string
	Format    string
	Pattern   string
	MinLength *uint64
	MaxLength *uint64

	// enum (ordered literal string values)
	Enum []string

	// number/integer
	Min *float64
	Max *float64

	// array
	Items    *SchemaNode
	MinItems *uint64
	MaxItems *uint64

	// object
	Properties []Property
	Required   []string

	// ref; target resolved against the component-schema namespace
	Ref string
}

// Property preserves declaration order inside an object schema.
type Property struct {
	Name   string
	Schema *SchemaNode
}
