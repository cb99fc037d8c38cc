package tsemitter

import (
	"strings"
	"testing"

	"github.com/zodgen/openapi2zod/internal/compiler"
)

func u64(v uint64) *uint64   { return &v }
func f64(v float64) *float64 { return &v }

func TestRenderExpr_StringFormats(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	cases := []struct {
		expr *compiler.Expr
		want string
	}{
		{&compiler.Expr{Kind: compiler.ExprString}, "z.string()"},
		{&compiler.Expr{Kind: compiler.ExprString, Format: "email"}, "z.string().email()"},
		{&compiler.Expr{Kind: compiler.ExprString, Format: "uuid"}, "z.string().uuid()"},
		{&compiler.Expr{Kind: compiler.ExprString, Format: "date-time"}, "z.string().datetime()"},
		{&compiler.Expr{Kind: compiler.ExprString, Format: "uri"}, "z.string().url()"},
		{&compiler.Expr{Kind: compiler.ExprString, Format: "date"}, `z.string().regex(/^\d{4}-\d{2}-\d{2}$/)`},
		{&compiler.Expr{Kind: compiler.ExprString, MinLength: u64(1), MaxLength: u64(5)}, "z.string().min(1).max(5)"},
		{&compiler.Expr{Kind: compiler.ExprString, Pattern: "^a/b$"}, `z.string().regex(/^a\/b$/)`},
	}
	for _, c := range cases {
		if got := renderExpr(c.expr, st, 0); got != c.want {
			t.Errorf("renderExpr(%+v) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestRenderExpr_Numbers(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	e := &compiler.Expr{Kind: compiler.ExprInteger, Min: f64(0), Max: f64(100)}
	if got, want := renderExpr(e, st, 0), "z.number().int().gte(0).lte(100)"; got != want {
		t.Errorf("integer: got %q, want %q", got, want)
	}
	e = &compiler.Expr{Kind: compiler.ExprNumber, Min: f64(0.5)}
	if got, want := renderExpr(e, st, 0), "z.number().gte(0.5)"; got != want {
		t.Errorf("number: got %q, want %q", got, want)
	}
}

func TestRenderExpr_ModifierOrder(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	e := &compiler.Expr{
		Kind:        compiler.ExprString,
		Nullable:    true,
		Optional:    true,
		HasDefault:  true,
		Default:     `"cat"`,
		Description: "what kind",
	}
	want := `z.string().nullable().optional().default("cat").describe("what kind")`
	if got := renderExpr(e, st, 0); got != want {
		t.Errorf("modifier order: got %q, want %q", got, want)
	}
}

func TestRenderExpr_RefIsDeferred(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	e := &compiler.Expr{Kind: compiler.ExprRef, Ref: "Pet"}
	if got, want := renderExpr(e, st, 0), "z.lazy(() => Pet)"; got != want {
		t.Errorf("ref: got %q, want %q", got, want)
	}
}

func TestRenderExpr_ObjectStrictAndOrdered(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	e := &compiler.Expr{
		Kind: compiler.ExprObject,
		Props: []compiler.Prop{
			{Name: "name", Expr: &compiler.Expr{Kind: compiler.ExprString}},
			{Name: "dash-key", Expr: &compiler.Expr{Kind: compiler.ExprBoolean, Optional: true}},
		},
	}
	want := "z.object({\n" +
		"  name: z.string(),\n" +
		"  \"dash-key\": z.boolean().optional(),\n" +
		"}).strict()"
	if got := renderExpr(e, st, 0); got != want {
		t.Errorf("object: got:\n%s\nwant:\n%s", got, want)
	}

	empty := &compiler.Expr{Kind: compiler.ExprObject}
	if got := renderExpr(empty, st, 0); got != "z.object({}).strict()" {
		t.Errorf("empty object: got %q", got)
	}
}

func TestRenderExpr_EnumQuoteMark(t *testing.T) {
	t.Parallel()
	e := &compiler.Expr{Kind: compiler.ExprEnum, Variants: []string{"cat", "dog"}}

	st := DefaultStyle()
	if got, want := renderExpr(e, st, 0), `z.enum(["cat", "dog"])`; got != want {
		t.Errorf("double quotes: got %q, want %q", got, want)
	}

	st.QuoteMark = SingleQuote
	if got, want := renderExpr(e, st, 0), `z.enum(['cat', 'dog'])`; got != want {
		t.Errorf("single quotes: got %q, want %q", got, want)
	}
}

func TestRenderExpr_Array(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	e := &compiler.Expr{
		Kind:     compiler.ExprArray,
		Elem:     &compiler.Expr{Kind: compiler.ExprRef, Ref: "Pet"},
		MinItems: u64(1),
	}
	if got, want := renderExpr(e, st, 0), "z.array(z.lazy(() => Pet)).min(1)"; got != want {
		t.Errorf("array: got %q, want %q", got, want)
	}
}

func TestRenderSchemas_TypeAliases(t *testing.T) {
	t.Parallel()
	res := &compiler.Result{
		Schemas: []compiler.NamedSchema{
			{Name: "Pet", Expr: &compiler.Expr{Kind: compiler.ExprString}},
		},
		Aliases: []compiler.TypeAlias{{Name: "Pet", SchemaName: "Pet"}},
	}
	out := renderSchemas(res, DefaultStyle())
	if !strings.Contains(out, "export const Pet = z.string();") {
		t.Errorf("missing schema constant:\n%s", out)
	}
	if !strings.Contains(out, "export type Pet = z.infer<typeof Pet>;") {
		t.Errorf("missing type alias:\n%s", out)
	}
}

func TestRenderHandlers_AbsentSlots(t *testing.T) {
	t.Parallel()
	res := &compiler.Result{
		Handlers: []compiler.HandlerDecl{
			{Name: "getPetsHandler", Method: "get", Path: "/pets", QueryParams: "GetPetsQueryParams"},
		},
	}
	out := renderHandlers(res, DefaultStyle())
	want := "export type getPetsHandler = Handler<\n" +
		"  undefined,\n" +
		"  Record<string, never>,\n" +
		"  z.infer<typeof GetPetsQueryParams>,\n" +
		"  undefined\n" +
		">;\n"
	if !strings.Contains(out, want) {
		t.Errorf("handler declaration mismatch:\n%s", out)
	}
	if !strings.Contains(out, "import { GetPetsQueryParams } from \"./schemas\";") {
		t.Errorf("missing schema import:\n%s", out)
	}
}

func TestRenderClient_CarriesMethodPathAndBaseURL(t *testing.T) {
	t.Parallel()
	res := &compiler.Result{
		Clients: []compiler.ClientDecl{
			{
				Name:         "postPets",
				ArgsName:     "PostPetsArgs",
				Method:       "post",
				Path:         "/pets",
				BaseURL:      "https://api.example.com",
				RequestBody:  "PostPetsRequestBody",
				BodyRequired: true,
				ResponseBody: "PostPetsResponseBody",
			},
		},
	}
	out := renderClient(res, DefaultStyle())
	for _, want := range []string{
		`export const DEFAULT_BASE_URL = "https://api.example.com";`,
		"export type PostPetsArgs = {",
		"body: z.infer<typeof PostPetsRequestBody>;",
		"export async function postPets(args: PostPetsArgs): Promise<ApiResponse<z.infer<typeof PostPetsResponseBody>>> {",
		`method: "post",`,
		`path: "/pets",`,
		"baseUrl: args.baseUrl ?? DEFAULT_BASE_URL,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("client output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "body?:") {
		t.Errorf("required body must not be optional:\n%s", out)
	}
}

func TestRenderClient_OptionalArgsWhenNoBodyOrPathParams(t *testing.T) {
	t.Parallel()
	res := &compiler.Result{
		Clients: []compiler.ClientDecl{
			{Name: "getPets", ArgsName: "GetPetsArgs", Method: "get", Path: "/pets", BaseURL: "https://x"},
		},
	}
	out := renderClient(res, DefaultStyle())
	if !strings.Contains(out, "export async function getPets(args: GetPetsArgs = {}):") {
		t.Errorf("expected defaulted args object:\n%s", out)
	}
}

func TestRenderExpr_PetExample(t *testing.T) {
	t.Parallel()
	st := DefaultStyle()
	pet := &compiler.Expr{
		Kind: compiler.ExprObject,
		Props: []compiler.Prop{
			{Name: "id", Expr: &compiler.Expr{Kind: compiler.ExprInteger}},
			{Name: "name", Expr: &compiler.Expr{
				Kind:       compiler.ExprString,
				Nullable:   true,
				Optional:   true,
				HasDefault: true,
				Default:    `"Fluffy"`,
			}},
			{Name: "species", Expr: &compiler.Expr{Kind: compiler.ExprRef, Ref: "Species"}},
		},
	}
	want := "z.object({\n" +
		"  id: z.number().int(),\n" +
		"  name: z.string().nullable().optional().default(\"Fluffy\"),\n" +
		"  species: z.lazy(() => Species),\n" +
		"}).strict()"
	if got := renderExpr(pet, st, 0); got != want {
		t.Errorf("pet object mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	species := &compiler.Expr{Kind: compiler.ExprEnum, Variants: []string{"cat", "dog"}}
	if got, wantEnum := renderExpr(species, st, 0), `z.enum(["cat", "dog"])`; got != wantEnum {
		t.Errorf("species enum: got %q, want %q", got, wantEnum)
	}
}
