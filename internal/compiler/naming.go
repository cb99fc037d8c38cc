package compiler

import "strings"

// Name derivation ties operations to their synthesized schema, handler, and
// client names. Both functions are pure: identical inputs always yield the
// identical identifier. Collision detection is not performed here; the
// synthesizer relies on (method, path) pairs being unique in the source
// document.

// Derive maps (method, path, suffix) to an identifier with a lower-case
// method token. Used for handler types and client functions:
//
//	Derive("get", "/pets/{id}", "Handler") == "getPetsIdHandler"
//	Derive("post", "/pets", "") == "postPets"
func Derive(method, path, suffix string) string {
	return strings.ToLower(method) + pathIdent(path) + suffix
}

// DeriveExported is Derive with a capitalized method token. Used for schema
// names and argument shapes: DeriveExported("post", "/pets", "RequestBody")
// yields "PostPetsRequestBody".
func DeriveExported(method, path, suffix string) string {
	return capitalize(strings.ToLower(method)) + pathIdent(path) + suffix
}

func pathIdent(path string) string {
	var b strings.Builder
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		seg = strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
		for _, tok := range strings.Split(seg, "_") {
			b.WriteString(capitalize(tok))
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
