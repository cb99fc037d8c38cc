package tsemitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zodgen/openapi2zod/internal/compiler"
)

// Options controls how the TypeScript emitter renders a project.
type Options struct {
	OutDir      string // required; target directory to write the project
	ProjectName string // package name; defaults to "api-schemas" when empty
	Title       string // source document title, informational
	Style       Style  // formatting; zero value is not valid, use DefaultStyle
	Force       bool   // overwrite existing files
	DryRun      bool   // don't write, only plan
	Verbose     bool
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and final resolved names.
type Result struct {
	ProjectName string
	Planned     []PlannedFile
}

// Emit renders the compiled schema set, handler types, and client functions
// as a TypeScript project. The formatting style is validated up front;
// rendering is deterministic, so the same compilation always produces
// byte-identical files.
func Emit(ctx context.Context, res *compiler.Result, opts Options) (*Result, error) {
	_ = ctx
	if res == nil {
		return nil, fmt.Errorf("tsemitter: nil compilation result")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("tsemitter: OutDir is required")
	}
	if err := opts.Style.Validate(); err != nil {
		return nil, err
	}
	name := sanitizePackageName(opts.ProjectName)
	if name == "" {
		name = "api-schemas"
	}

	st := opts.Style
	withClient := len(res.Clients) > 0

	files := map[string][]byte{}
	files["schemas.ts"] = []byte(st.applyLineEnding(renderSchemas(res, st)))
	files["handlers.ts"] = []byte(st.applyLineEnding(renderHandlers(res, st)))
	if withClient {
		files["client.ts"] = []byte(st.applyLineEnding(renderClient(res, st)))
	}
	files["runtime.ts"] = []byte(st.applyLineEnding(renderRuntime()))
	files["index.ts"] = []byte(st.applyLineEnding(renderIndex(withClient, st)))
	files["package.json"] = []byte(renderPackageJSON(name))
	files["README.md"] = []byte(renderReadme(name, opts.Title))

	// Plan in deterministic order
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{ProjectName: name, Planned: planned}, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	// Pre-flight: if directory exists and not empty and not force, error.
	if st, err := os.Stat(abs); err == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("tsemitter: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}

func sanitizePackageName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	b := strings.Builder{}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-.")
}
