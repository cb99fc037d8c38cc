package tsemitter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zodgen/openapi2zod/internal/compiler"
)

// renderSchemas produces schemas.ts: one exported zod constant per named
// schema, in compilation order, followed by one derived static type per
// schema. TypeScript keeps type and const namespaces separate, so the alias
// may share the schema's name.
func renderSchemas(res *compiler.Result, st Style) string {
	var b strings.Builder
	b.WriteString("import { z } from " + st.quote("zod") + ";\n")
	for _, ns := range res.Schemas {
		b.WriteString("\n")
		b.WriteString("export const " + ns.Name + " = " + renderExpr(ns.Expr, st, 0) + ";\n")
	}
	if len(res.Aliases) > 0 {
		b.WriteString("\n")
	}
	for _, a := range res.Aliases {
		b.WriteString("export type " + a.Name + " = z.infer<typeof " + a.SchemaName + ">;\n")
	}
	return b.String()
}

// renderExpr turns one validator expression into zod source text. Modifiers
// always render in the fixed order nullable, optional, default, describe.
func renderExpr(e *compiler.Expr, st Style, depth int) string {
	var b strings.Builder

	switch e.Kind {
	case compiler.ExprString:
		b.WriteString("z.string()")
		switch e.Format {
		case "email":
			b.WriteString(".email()")
		case "uuid":
			b.WriteString(".uuid()")
		case "date-time":
			b.WriteString(".datetime()")
		case "date":
			b.WriteString(`.regex(/^\d{4}-\d{2}-\d{2}$/)`)
		case "uri":
			b.WriteString(".url()")
		}
		if e.Pattern != "" {
			b.WriteString(".regex(/" + escapeRegex(e.Pattern) + "/)")
		}
		if e.MinLength != nil {
			fmt.Fprintf(&b, ".min(%d)", *e.MinLength)
		}
		if e.MaxLength != nil {
			fmt.Fprintf(&b, ".max(%d)", *e.MaxLength)
		}

	case compiler.ExprNumber, compiler.ExprInteger:
		b.WriteString("z.number()")
		if e.Kind == compiler.ExprInteger {
			b.WriteString(".int()")
		}
		if e.Min != nil {
			b.WriteString(".gte(" + numLit(*e.Min) + ")")
		}
		if e.Max != nil {
			b.WriteString(".lte(" + numLit(*e.Max) + ")")
		}

	case compiler.ExprBoolean:
		b.WriteString("z.boolean()")

	case compiler.ExprEnum:
		quoted := make([]string, 0, len(e.Variants))
		for _, v := range e.Variants {
			quoted = append(quoted, st.quote(v))
		}
		b.WriteString("z.enum([" + strings.Join(quoted, ", ") + "])")

	case compiler.ExprArray:
		b.WriteString("z.array(" + renderExpr(e.Elem, st, depth) + ")")
		if e.MinItems != nil {
			fmt.Fprintf(&b, ".min(%d)", *e.MinItems)
		}
		if e.MaxItems != nil {
			fmt.Fprintf(&b, ".max(%d)", *e.MaxItems)
		}

	case compiler.ExprObject:
		b.WriteString(renderObject(e, st, depth))

	case compiler.ExprRef:
		b.WriteString("z.lazy(() => " + e.Ref + ")")

	default:
		b.WriteString("z.any()")
	}

	if e.Nullable {
		b.WriteString(".nullable()")
	}
	if e.Optional {
		b.WriteString(".optional()")
	}
	if e.HasDefault {
		b.WriteString(".default(" + e.Default + ")")
	}
	if e.Description != "" {
		b.WriteString(".describe(" + st.quote(e.Description) + ")")
	}
	return b.String()
}

// renderObject emits a strict object: any key not explicitly declared is
// rejected. Property order matches declaration order.
func renderObject(e *compiler.Expr, st Style, depth int) string {
	if len(e.Props) == 0 {
		return "z.object({}).strict()"
	}
	pad := strings.Repeat(st.indentUnit(), depth)
	inner := strings.Repeat(st.indentUnit(), depth+1)
	var b strings.Builder
	b.WriteString("z.object({\n")
	for _, p := range e.Props {
		b.WriteString(inner + propKey(p.Name, st) + ": " + renderExpr(p.Expr, st, depth+1) + ",\n")
	}
	b.WriteString(pad + "}).strict()")
	return b.String()
}

var tsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func propKey(name string, st Style) string {
	if tsIdentRe.MatchString(name) {
		return name
	}
	return st.quote(name)
}

func numLit(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeRegex makes a pattern safe to embed in a /.../ literal.
func escapeRegex(pattern string) string {
	return strings.ReplaceAll(pattern, "/", `\/`)
}

// renderHandlers produces handlers.ts: one handler-type declaration per
// operation, parameterized by the operation's synthesized schemas. Absent
// body/response slots render as undefined; absent param slots render as the
// empty object type.
func renderHandlers(res *compiler.Result, st Style) string {
	var b strings.Builder
	refs := collectHandlerRefs(res.Handlers)
	if len(refs) > 0 {
		b.WriteString("import { z } from " + st.quote("zod") + ";\n")
	}
	b.WriteString("import type { Handler } from " + st.quote("./runtime") + ";\n")
	if len(refs) > 0 {
		b.WriteString("import { " + strings.Join(refs, ", ") + " } from " + st.quote("./schemas") + ";\n")
	}
	ind := st.indentUnit()
	for _, h := range res.Handlers {
		b.WriteString("\n")
		b.WriteString("export type " + h.Name + " = Handler<\n")
		b.WriteString(ind + slotType(h.RequestBody, "undefined") + ",\n")
		b.WriteString(ind + slotType(h.PathParams, "Record<string, never>") + ",\n")
		b.WriteString(ind + slotType(h.QueryParams, "Record<string, never>") + ",\n")
		b.WriteString(ind + slotType(h.ResponseBody, "undefined") + "\n")
		b.WriteString(">;\n")
	}
	return b.String()
}

func slotType(schemaName, absent string) string {
	if schemaName == "" {
		return absent
	}
	return "z.infer<typeof " + schemaName + ">"
}

func collectHandlerRefs(hs []compiler.HandlerDecl) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, h := range hs {
		add(h.RequestBody)
		add(h.PathParams)
		add(h.QueryParams)
		add(h.ResponseBody)
	}
	return out
}

// renderClient produces client.ts: one argument shape and one function per
// operation, carrying the literal method and path and defaulting the base URL
// to the document's first declared server.
func renderClient(res *compiler.Result, st Style) string {
	var b strings.Builder
	refs := collectClientRefs(res.Clients)
	if len(refs) > 0 {
		b.WriteString("import { z } from " + st.quote("zod") + ";\n")
	}
	b.WriteString("import { request, type ApiResponse } from " + st.quote("./runtime") + ";\n")
	if len(refs) > 0 {
		b.WriteString("import { " + strings.Join(refs, ", ") + " } from " + st.quote("./schemas") + ";\n")
	}
	if len(res.Clients) > 0 {
		b.WriteString("\n")
		b.WriteString("export const DEFAULT_BASE_URL = " + st.quote(res.Clients[0].BaseURL) + ";\n")
	}

	ind := st.indentUnit()
	for _, c := range res.Clients {
		b.WriteString("\n")
		b.WriteString("export type " + c.ArgsName + " = {\n")
		if c.RequestBody != "" {
			opt := ""
			if !c.BodyRequired {
				opt = "?"
			}
			b.WriteString(ind + "body" + opt + ": z.infer<typeof " + c.RequestBody + ">;\n")
		}
		if c.PathParams != "" {
			b.WriteString(ind + "pathParams: z.infer<typeof " + c.PathParams + ">;\n")
		}
		if c.QueryParams != "" {
			b.WriteString(ind + "queryParams?: z.infer<typeof " + c.QueryParams + ">;\n")
		}
		b.WriteString(ind + "baseUrl?: string;\n")
		b.WriteString("};\n\n")

		ret := "ApiResponse<unknown>"
		if c.ResponseBody != "" {
			ret = "ApiResponse<z.infer<typeof " + c.ResponseBody + ">>"
		}
		args := "args: " + c.ArgsName
		if c.RequestBody == "" && c.PathParams == "" {
			args += " = {}"
		}
		b.WriteString("export async function " + c.Name + "(" + args + "): Promise<" + ret + "> {\n")
		b.WriteString(ind + "return request({\n")
		b.WriteString(ind + ind + "method: " + st.quote(c.Method) + ",\n")
		b.WriteString(ind + ind + "path: " + st.quote(c.Path) + ",\n")
		b.WriteString(ind + ind + "baseUrl: args.baseUrl ?? DEFAULT_BASE_URL,\n")
		if c.RequestBody != "" {
			b.WriteString(ind + ind + "body: args.body,\n")
		}
		if c.PathParams != "" {
			b.WriteString(ind + ind + "pathParams: args.pathParams,\n")
		}
		if c.QueryParams != "" {
			b.WriteString(ind + ind + "query: args.queryParams,\n")
		}
		b.WriteString(ind + "});\n")
		b.WriteString("}\n")
	}
	return b.String()
}

func collectClientRefs(cs []compiler.ClientDecl) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, c := range cs {
		add(c.RequestBody)
		add(c.PathParams)
		add(c.QueryParams)
		add(c.ResponseBody)
	}
	return out
}

func renderIndex(withClient bool, st Style) string {
	var b strings.Builder
	b.WriteString("export * from " + st.quote("./runtime") + ";\n")
	b.WriteString("export * from " + st.quote("./schemas") + ";\n")
	b.WriteString("export * from " + st.quote("./handlers") + ";\n")
	if withClient {
		b.WriteString("export * from " + st.quote("./client") + ";\n")
	}
	return b.String()
}
