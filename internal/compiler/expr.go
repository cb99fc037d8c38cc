package compiler

// Expr is the language-neutral intermediate representation of a validator
// expression. The translator builds Expr trees; a rendering stage (per target
// syntax) turns them into source text. Keeping the IR free of any concrete
// validator syntax is what decouples the compiler from its emitters.
type Expr struct {
	Kind ExprKind

	// string
	Format    string // email|uuid|date-time|date|uri; at most one applies
	Pattern   string // custom regex; combines with Format
	MinLength *uint64
	MaxLength *uint64

	// enum: ordered alternation over literal string values
	Variants []string

	// number/integer
	Min *float64
	Max *float64

	// array
	Elem     *Expr
	MinItems *uint64
	MaxItems *uint64

	// object: strict, ordered; rejects undeclared keys
	Props []Prop

	// ref: deferred reference target, resolved lazily at use-time so that
	// self- and mutually-recursive schemas compile
	Ref string

	// Modifiers, applied by renderers in this fixed order.
	Nullable    bool
	Optional    bool
	HasDefault  bool
	Default     string // stringified literal, ready to embed
	Description string
}

type ExprKind int

const (
	ExprAny ExprKind = iota
	ExprString
	ExprNumber
	ExprInteger
	ExprBoolean
	ExprEnum
	ExprArray
	ExprObject
	ExprRef
)

func (k ExprKind) String() string {
	switch k {
	case ExprAny:
		return "any"
	case ExprString:
		return "string"
	case ExprNumber:
		return "number"
	case ExprInteger:
		return "integer"
	case ExprBoolean:
		return "boolean"
	case ExprEnum:
		return "enum"
	case ExprArray:
		return "array"
	case ExprObject:
		return "object"
	case ExprRef:
		return "ref"
	default:
		return "unknown"
	}
}

// Prop is one object property; slice order matches declaration order.
type Prop struct {
	Name string
	Expr *Expr
}

// Provenance tags where a named schema came from.
type Provenance string

const (
	ProvenanceComponent    Provenance = "component"
	ProvenanceRequestBody  Provenance = "requestBody"
	ProvenanceResponseBody Provenance = "responseBody"
	ProvenancePathParams   Provenance = "pathParams"
	ProvenanceQueryParams  Provenance = "queryParams"
)

// NamedSchema is one (name, validator expression, provenance) triple produced
// by compilation. Names are unique within a single compilation.
type NamedSchema struct {
	Name       string
	Expr       *Expr
	Provenance Provenance
}
