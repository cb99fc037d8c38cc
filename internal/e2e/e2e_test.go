package e2e

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	cli "github.com/zodgen/openapi2zod/internal/cli"
)

// minimal OpenAPI v3 spec exercising components, params, bodies, and clients
const sampleSpec = "" +
	"openapi: 3.0.0\n" +
	"info:\n" +
	"  title: E2E Sample\n" +
	"  version: '1.0.0'\n" +
	"servers:\n" +
	"  - url: https://api.example.com\n" +
	"paths:\n" +
	"  /pets:\n" +
	"    get:\n" +
	"      summary: List pets\n" +
	"      tags: [read]\n" +
	"      parameters:\n" +
	"        - in: query\n" +
	"          name: limit\n" +
	"          schema:\n" +
	"            type: integer\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: ok\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                type: array\n" +
	"                items:\n" +
	"                  $ref: '#/components/schemas/Pet'\n" +
	"    post:\n" +
	"      summary: Create pet\n" +
	"      tags: [write]\n" +
	"      requestBody:\n" +
	"        required: true\n" +
	"        content:\n" +
	"          application/json:\n" +
	"            schema:\n" +
	"              $ref: '#/components/schemas/Pet'\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: created\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                $ref: '#/components/schemas/Pet'\n" +
	"  /pets/{id}:\n" +
	"    get:\n" +
	"      summary: Get one pet\n" +
	"      tags: [read]\n" +
	"      parameters:\n" +
	"        - in: path\n" +
	"          name: id\n" +
	"          required: true\n" +
	"          schema:\n" +
	"            type: string\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: ok\n" +
	"          content:\n" +
	"            application/json:\n" +
	"              schema:\n" +
	"                $ref: '#/components/schemas/Pet'\n" +
	"components:\n" +
	"  schemas:\n" +
	"    Pet:\n" +
	"      type: object\n" +
	"      required: [name, species]\n" +
	"      properties:\n" +
	"        name:\n" +
	"          type: string\n" +
	"          minLength: 1\n" +
	"        species:\n" +
	"          $ref: '#/components/schemas/Species'\n" +
	"        nickname:\n" +
	"          type: string\n" +
	"    Species:\n" +
	"      type: string\n" +
	"      enum: [cat, dog]\n" +
	"      default: cat\n"

func writeTempSpec(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "openapi.yaml")
	if err := os.WriteFile(p, []byte(sampleSpec), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) {
	t.Helper()
	root := cli.NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("cli execute %v: %v", args, err)
	}
}

func digestDir(t *testing.T, dir string) (files []string, sum string) {
	t.Helper()
	var list []string
	h := sha256.New()
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		list = append(list, rel)
		_, _ = h.Write([]byte(rel))
		b, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		_, _ = h.Write(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	sort.Strings(list)
	return list, hex.EncodeToString(h.Sum(nil))
}

func TestE2E_Generate_Deterministic(t *testing.T) {
	t.Parallel()
	spec := writeTempSpec(t)
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", dir1, "--force")
	runCLI(t, "generate", "--input", spec, "--out", dir2, "--force")

	files1, sum1 := digestDir(t, dir1)
	files2, sum2 := digestDir(t, dir2)
	if !slicesEqual(files1, files2) || sum1 != sum2 {
		t.Fatalf("generated outputs differ between runs\nfiles1=%v\nfiles2=%v\nsum1=%s\nsum2=%s", files1, files2, sum1, sum2)
	}

	want := []string{"README.md", "client.ts", "handlers.ts", "index.ts", "package.json", "runtime.ts", "schemas.ts"}
	if !slicesEqual(files1, want) {
		t.Fatalf("unexpected file set: %v", files1)
	}
}

func TestE2E_Generate_SchemaContents(t *testing.T) {
	t.Parallel()
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out, "--force")

	schemas, err := os.ReadFile(filepath.Join(out, "schemas.ts"))
	if err != nil {
		t.Fatalf("read schemas: %v", err)
	}
	s := string(schemas)

	for _, want := range []string{
		"export const Pet = z.object({",
		`export const Species = z.enum(["cat", "dog"]).default("cat");`,
		"species: z.lazy(() => Species),",
		"nickname: z.string().optional(),",
		"name: z.string().min(1),",
		"export const PostPetsRequestBody = z.lazy(() => Pet);",
		"export const GetPetsIdPathParams = z.object({",
		"export const GetPetsQueryParams = z.object({",
		"export type Pet = z.infer<typeof Pet>;",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("schemas.ts missing %q:\n%s", want, s)
		}
	}
	if !strings.Contains(s, "}).strict()") {
		t.Errorf("expected strict objects:\n%s", s)
	}

	handlers, err := os.ReadFile(filepath.Join(out, "handlers.ts"))
	if err != nil {
		t.Fatalf("read handlers: %v", err)
	}
	for _, want := range []string{"getPetsHandler", "postPetsHandler", "getPetsIdHandler"} {
		if !strings.Contains(string(handlers), want) {
			t.Errorf("handlers.ts missing %q", want)
		}
	}

	client, err := os.ReadFile(filepath.Join(out, "client.ts"))
	if err != nil {
		t.Fatalf("read client: %v", err)
	}
	for _, want := range []string{
		"export async function getPets(",
		"export async function postPets(",
		"export async function getPetsId(",
		"https://api.example.com",
	} {
		if !strings.Contains(string(client), want) {
			t.Errorf("client.ts missing %q", want)
		}
	}
}

func TestE2E_Generate_TagFilter(t *testing.T) {
	t.Parallel()
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out, "--include-tags", "write", "--force")

	handlers, err := os.ReadFile(filepath.Join(out, "handlers.ts"))
	if err != nil {
		t.Fatalf("read handlers: %v", err)
	}
	if !strings.Contains(string(handlers), "postPetsHandler") {
		t.Errorf("expected write-tagged handler to remain")
	}
	if strings.Contains(string(handlers), "getPetsHandler") {
		t.Errorf("expected read-tagged handlers to be filtered out")
	}
}

func TestE2E_Generate_SingleQuoteStyle(t *testing.T) {
	t.Parallel()
	spec := writeTempSpec(t)
	out := t.TempDir()

	runCLI(t, "generate", "--input", spec, "--out", out, "--quote-mark", "single", "--force")

	schemas, err := os.ReadFile(filepath.Join(out, "schemas.ts"))
	if err != nil {
		t.Fatalf("read schemas: %v", err)
	}
	if !strings.Contains(string(schemas), "z.enum(['cat', 'dog'])") {
		t.Errorf("expected single-quoted enum variants:\n%s", schemas)
	}
	if !strings.Contains(string(schemas), "import { z } from 'zod';") {
		t.Errorf("expected single-quoted import:\n%s", schemas)
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
