// Command bindcheck validates binding documents.
//
//	bindcheck [--transformers file]... [--dump] [--quiet] FILE...
//
// Each FILE is a YAML (.yaml, .yml) or TOML (.toml) binding document.
// Transformer definition files given with --transformers are registered on
// top of the builtin transformers before the documents are checked. The exit
// status is 1 when any document has errors and 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"kvbind/declare"
	"kvbind/internal/diagnostic"
	"kvbind/internal/logging"
	"kvbind/transform"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	transformers []string
	dump         bool
	quiet        bool
	files        []string
}

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		fmt.Fprintln(stderr, "bindcheck:", err)

		return exitUsage
	}

	reg, ok := loadTransformers(opts.transformers, stderr)

	for _, file := range opts.files {
		if !check(file, reg, opts, stdout, stderr) {
			ok = false
		}
	}

	if !ok {
		return exitError
	}

	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := pflag.NewFlagSet("bindcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringArrayVarP(&opts.transformers, "transformers", "t", nil, "transformer definition file (repeatable)")
	fs.BoolVar(&opts.dump, "dump", false, "print the normalized document as YAML and its decoded structure")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "only print errors")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bindcheck [--transformers file]... [--dump] [--quiet] FILE...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return nil, errors.New("no documents given")
	}

	return opts, nil
}

// loadTransformers registers every definition file on a copy of the
// default registry.
func loadTransformers(files []string, stderr io.Writer) (*transform.Registry, bool) {
	reg := transform.Default.Clone()
	ok := true

	for _, file := range files {
		df, err := transform.LoadFile(file)
		if err != nil {
			fmt.Fprintln(stderr, err)

			ok = false

			continue
		}

		for _, err := range transform.RegisterAll(reg, df.Transformers) {
			fmt.Fprintf(stderr, "%s: error: %v\n", file, err)

			ok = false
		}
	}

	return reg, ok
}

func check(file string, reg *transform.Registry, opts *options, stdout, stderr io.Writer) bool {
	doc, err := declare.LoadFile(file)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return false
	}

	res := declare.Validate(doc, reg)

	for _, d := range res.All() {
		if opts.quiet && d.Severity != diagnostic.SeverityError {
			continue
		}

		fmt.Fprintf(stdout, "%s: %s: %s\n", file, d.Severity, d)
	}

	if opts.dump {
		if err := dump(doc, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return false
		}
	}

	if !res.HasErrors() && !opts.quiet {
		fmt.Fprintf(stdout, "%s: ok (%d bindings, %d actions)\n", file, len(doc.Bindings), len(doc.Actions))
	}

	return !res.HasErrors()
}

func dump(doc *declare.Document, w io.Writer) error {
	data, err := declare.Marshal(doc, declare.FormatYAML)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(w, doc)

	return nil
}
