// Program coolscan reads a Cool source file, lexes it, and writes the
// rendered token/error stream the Cool test harness expects.
//
// Usage: coolscan [--out FILE] [--verbose] [--config FILE] FILE
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pborman/getopt"

	"github.com/alexisbouchez/coolscan/config"
	"github.com/alexisbouchez/coolscan/lexer"
)

func main() {
	var outPath string
	var configPath string
	var verbose bool
	var help bool

	getopt.StringVarLong(&outPath, "out", 'o', "write the rendered stream here instead of stdout", "FILE")
	getopt.StringVarLong(&configPath, "config", 'c', "YAML file overriding scanner limits", "FILE")
	getopt.BoolVarLong(&verbose, "verbose", 0, "report on stderr when block comment nesting reaches comment_depth_warn")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("FILE")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "coolscan: exactly one source file is required")
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(args[0], outPath, configPath, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "coolscan: %s\n", err)
		os.Exit(1)
	}
}

func run(path, outPath, configPath string, verbose bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}

	limits, err := config.Load(configPath)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("could not create %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	opts := []lexer.Option{lexer.WithLimits(limits)}
	if verbose {
		opts = append(opts, lexer.WithTracer(func(msg string) {
			fmt.Fprintf(os.Stderr, "coolscan: %s\n", msg)
		}))
	}

	items := lexer.Scan(string(src), opts...)
	return render(out, filepath.Base(path), items)
}

func render(w io.Writer, name string, items []lexer.Item) error {
	if _, err := fmt.Fprintf(w, "#name %q\n", name); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, renderItem(item)); err != nil {
			return err
		}
	}
	return nil
}

func renderItem(item lexer.Item) string {
	if item.Token != nil {
		return item.Token.Render()
	}
	return item.Error.Render()
}
