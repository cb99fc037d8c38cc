package compiler

import "github.com/zodgen/openapi2zod/internal/spec"

// translateParams wraps a list of named parameters into a strict object
// expression keyed by parameter name, in declared order. Parameters share the
// property modifier pipeline with one difference: the parameter's own Required
// flag, not a parent required-name set, governs the optional wrapper.
func translateParams(params []spec.Parameter) (*Expr, error) {
	props := make([]Prop, 0, len(params))
	for _, p := range params {
		pe, err := translateNode(p.Schema, p.Name)
		if err != nil {
			return nil, err
		}
		if !p.Required {
			pe.Optional = true
		}
		if p.Description != "" {
			pe.Description = p.Description
		}
		props = append(props, Prop{Name: p.Name, Expr: pe})
	}
	return &Expr{Kind: ExprObject, Props: props}, nil
}

// paramsByLocation filters parameters in declared order.
func paramsByLocation(params []spec.Parameter, in string) []spec.Parameter {
	var out []spec.Parameter
	for _, p := range params {
		if p.In == in {
			out = append(out, p)
		}
	}
	return out
}
