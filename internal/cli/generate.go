package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/zodgen/openapi2zod/internal/compiler"
	"github.com/zodgen/openapi2zod/internal/emitter/tsemitter"
	genspec "github.com/zodgen/openapi2zod/internal/spec"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input       string
	Out         string
	ProjectName string
	IncludeTags []string
	ExcludeTags []string
	Indent      int
	LineEnding  string
	QuoteMark   string
	NoClient    bool
	ConfigPath  string
	DryRun      bool
	Force       bool
	Verbose     bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Indent: 2, LineEnding: "lf", QuoteMark: "double"}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate zod validators, handler types, and client stubs from an OpenAPI document",
		Long: "Generate a TypeScript project of zod runtime validators, derived static types, " +
			"handler type declarations, and client function stubs from an OpenAPI/Swagger document.",
		Example: strings.TrimSpace(`  openapi2zod generate --input openapi.yaml --out ./generated
  openapi2zod --config config.yaml generate --quote-mark single --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path or URL to the OpenAPI/Swagger document")
	flags.String("out", "", "Output directory (derived from the project name when omitted)")
	flags.String("project-name", "", "Override the generated package name")
	flags.StringSlice("include-tags", nil, "Only include operations with these tags")
	flags.StringSlice("exclude-tags", nil, "Exclude operations with these tags")
	flags.Int("indent", 2, "Indentation width in spaces")
	flags.String("line-ending", "lf", "Line ending for generated files (lf|crlf)")
	flags.String("quote-mark", "double", "Quote mark for generated string literals (single|double)")
	flags.Bool("no-client", false, "Skip client function generation")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing output when set")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("project-name") {
		value, err := flags.GetString("project-name")
		if err != nil {
			return err
		}
		cfg.ProjectName = strings.TrimSpace(value)
	}
	if flags.Changed("include-tags") {
		value, err := flags.GetStringSlice("include-tags")
		if err != nil {
			return err
		}
		cfg.IncludeTags = sanitizeTags(value)
	}
	if flags.Changed("exclude-tags") {
		value, err := flags.GetStringSlice("exclude-tags")
		if err != nil {
			return err
		}
		cfg.ExcludeTags = sanitizeTags(value)
	}
	if flags.Changed("indent") {
		value, err := flags.GetInt("indent")
		if err != nil {
			return err
		}
		cfg.Indent = value
	}
	if flags.Changed("line-ending") {
		value, err := flags.GetString("line-ending")
		if err != nil {
			return err
		}
		cfg.LineEnding = strings.TrimSpace(value)
	}
	if flags.Changed("quote-mark") {
		value, err := flags.GetString("quote-mark")
		if err != nil {
			return err
		}
		cfg.QuoteMark = strings.TrimSpace(value)
	}
	if flags.Changed("no-client") {
		value, err := flags.GetBool("no-client")
		if err != nil {
			return err
		}
		cfg.NoClient = value
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("force") {
		value, err := flags.GetBool("force")
		if err != nil {
			return err
		}
		cfg.Force = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.ProjectName = strings.TrimSpace(c.ProjectName)
	c.LineEnding = strings.ToLower(strings.TrimSpace(c.LineEnding))
	c.QuoteMark = strings.ToLower(strings.TrimSpace(c.QuoteMark))
	c.IncludeTags = sanitizeTags(c.IncludeTags)
	c.ExcludeTags = sanitizeTags(c.ExcludeTags)
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}

	overlap := intersect(c.IncludeTags, c.ExcludeTags)
	if len(overlap) > 0 {
		return usageErrorf("generate: include/exclude tags overlap: %s", strings.Join(overlap, ", "))
	}

	if err := c.style().Validate(); err != nil {
		return usageErrorf("generate: %v", err)
	}

	return nil
}

func (c *GenerateConfig) style() tsemitter.Style {
	return tsemitter.Style{
		Indent:     c.Indent,
		LineEnding: tsemitter.LineEnding(c.LineEnding),
		QuoteMark:  tsemitter.QuoteMark(c.QuoteMark),
	}
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	style := cfg.style()

	// 1) Load the document (file or http/https URL) with validation and conversion.
	doc, err := genspec.Load(ctx, cfg.Input)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := fmt.Sprintf("spec: %s", se.Message)
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			if se.JSONPointer != "" {
				msg = fmt.Sprintf("%s\nPointer: %s", msg, se.JSONPointer)
			}
			return newUsageError(msg)
		}
		return err
	}

	// 2) Build the normalized document with tag filters.
	d, err := genspec.BuildDocument(
		ctx,
		doc,
		genspec.WithIncludeTags(cfg.IncludeTags),
		genspec.WithExcludeTags(cfg.ExcludeTags),
	)
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}
	log.Debugf("document: %d servers, %d components, %d paths", len(d.Servers), len(d.Components), len(d.Paths))

	// 3) Compile to the named schema set and declaration IR.
	res, err := compiler.Compile(d, compiler.Options{SkipClients: cfg.NoClient})
	if err != nil {
		switch compiler.KindOf(err) {
		case compiler.ValidationError, compiler.ConfigurationError:
			return usageErrorf("generate: %v", err)
		}
		return err
	}
	log.Debugf("compiled: %d schemas, %d handlers, %d clients", len(res.Schemas), len(res.Handlers), len(res.Clients))

	// 4) Derive output directory and project name defaults.
	projectName := cfg.ProjectName
	if projectName == "" {
		projectName = deriveProjectName(d.Title)
		if projectName == "" {
			projectName = "api-schemas"
		}
	}
	outDir := cfg.Out
	if outDir == "" {
		outDir = projectName
	}
	absOut := outDir
	if ap, err := filepath.Abs(outDir); err == nil {
		absOut = ap
	}

	// 5) Emit the TypeScript project.
	er, err := tsemitter.Emit(ctx, res, tsemitter.Options{
		OutDir:      outDir,
		ProjectName: projectName,
		Title:       d.Title,
		Style:       style,
		Force:       cfg.Force,
		DryRun:      cfg.DryRun,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return wrapOutputError(err, absOut)
	}
	if cfg.DryRun {
		paths := make([]string, 0, len(er.Planned))
		for _, p := range er.Planned {
			paths = append(paths, p.RelPath)
		}
		printPlan(absOut, len(er.Planned), paths)
	}

	return nil
}

func printPlan(outDir string, count int, relPaths []string) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", outDir, count)
	for _, p := range relPaths {
		fmt.Fprintf(os.Stdout, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return usageErrorf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg)
	}
	return err
}

func deriveProjectName(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return ""
	}
	t = strings.ToLower(t)
	repl := strings.NewReplacer("/", " ", "_", " ", ".", " ", ",", " ", ":", " ")
	t = repl.Replace(t)
	parts := strings.Fields(t)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "-")
}

func sanitizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	var result []string
	for _, item := range b {
		if _, ok := set[item]; ok {
			result = append(result, item)
		}
	}
	return result
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("read config file %q: %v", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return usageErrorf("parse config file %q: %v", path, err)
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.Input = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.Out = str
		case "projectname":
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.ProjectName = str
		case "includetags":
			list, err := valueAsStringSlice(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.IncludeTags = sanitizeTags(list)
		case "excludetags":
			list, err := valueAsStringSlice(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.ExcludeTags = sanitizeTags(list)
		case "indentation", "indent":
			n, err := valueAsInt(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.Indent = n
		case "lineending":
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.LineEnding = str
		case "quotemark":
			str, err := valueAsString(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.QuoteMark = str
		case "noclient":
			val, err := valueAsBool(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.NoClient = val
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.DryRun = val
		case "force":
			val, err := valueAsBool(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.Force = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return usageErrorf("config field %q: %v", key, err)
			}
			cfg.Verbose = val
		default:
			return usageErrorf("config file %q: unknown field %q", path, key)
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case float64:
		return int(val), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
