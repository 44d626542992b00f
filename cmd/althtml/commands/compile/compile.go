// Package compile implements the althtml CLI's `compile` subcommand: the
// §6 External Interfaces contract (one input path, one optional output
// path, non-zero exit and file:line:col: kind: message diagnostics on
// compile failure).
package compile

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"

	"github.com/titpetric/althtml"
	"github.com/titpetric/althtml/internal/ulid"
)

// config is the optional --config YAML document (§10.2): it overrides the
// macro recursion depth limit and the void-element vocabulary for
// embedders who need to target a stricter or extended tag set than the
// compiler's defaults. Unmarshaled with gopkg.in/yaml.v2, the same library
// vuego-playground's example loader already used for its own YAML metadata.
type config struct {
	MacroMaxDepth int      `yaml:"macro_max_depth"`
	VoidElements  []string `yaml:"void_elements"`
}

// loadConfig reads and parses the YAML file at path into opts for use with
// althtml.New. An empty path is not an error — compile falls back to
// compiler defaults; a path naming a file that cannot be read is.
func loadConfig(path string) ([]althtml.LoadOption, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	var opts []althtml.LoadOption
	if cfg.MacroMaxDepth > 0 {
		opts = append(opts, althtml.WithMacroMaxDepth(cfg.MacroMaxDepth))
	}
	if cfg.VoidElements != nil {
		opts = append(opts, althtml.WithVoidElements(cfg.VoidElements))
	}
	return opts, nil
}

// errCompileFailed is returned when the source compiled with errors already
// printed to stderr; main should exit non-zero without an extra message.
var errCompileFailed = errors.New("compilation failed")

// IsCompileFailure reports whether err is the sentinel Run returns when
// compilation itself failed (diagnostics already written to stderr), as
// opposed to a CLI-usage or I/O error that still needs reporting.
func IsCompileFailure(err error) bool {
	return errors.Is(err, errCompileFailed)
}

// Run executes the compile command with the given arguments.
func Run(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML file overriding macro depth limit and void-element set")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: althtml compile [--config file.yaml] <input.alt> [output.html]\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) < 1 || len(positional) > 2 {
		fs.Usage()
		return fmt.Errorf("compile: requires 1 or 2 arguments")
	}

	inputPath := positional[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	opts, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	html, errs := althtml.New(opts...).Compile(string(source), inputPath)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return errCompileFailed
	}

	if len(positional) == 1 {
		fmt.Fprint(os.Stdout, html)
		return nil
	}

	if err := writeAtomic(positional[1], []byte(html)); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// writeAtomic writes data to a temporary file in dest's directory, named
// with a ULID suffix, and renames it into place (§11.4) so a process that
// crashes mid-write never leaves a half-written destination behind.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp := filepath.Join(dir, "."+filepath.Base(dest)+"."+ulid.String()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
