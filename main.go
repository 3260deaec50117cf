package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/graspable/uiaudit/pkg/audit"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("uiaudit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	format := fs.String("format", "markdown", "output format: markdown or json")
	rulesPath := fs.String("rules", "", "YAML rules file (disable rules, override severities)")
	watch := fs.BoolP("watch", "w", false, "re-audit the file whenever it changes")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging on stderr")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: uiaudit <file.html> [--format markdown|json] [--rules file.yaml] [--watch]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "uiaudit %s\n", version)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *format != "markdown" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Fatal: unknown format %q (want markdown or json)\n", *format)
		return 2
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts := audit.Options{}
	if *rulesPath != "" {
		var err error
		opts, err = audit.LoadRules(*rulesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
			return 2
		}
	}

	path := fs.Arg(0)
	if *watch {
		return runWatch(path, *format, opts, stdout)
	}
	return auditOnce(path, *format, opts, stdout)
}

// auditOnce reads, audits and reports one file. Exit code 0 means the run
// completed, regardless of how many findings it produced; 2 is reserved for
// read and output failures.
func auditOnce(path, format string, opts audit.Options, w io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return 2
	}
	// Permissive decode: undecodable bytes are replaced, never fatal.
	doc := strings.ToValidUTF8(string(data), "�")

	start := time.Now()
	r := audit.AuditWithOptions(doc, opts)
	logrus.WithFields(logrus.Fields{
		"file":     path,
		"bytes":    len(data),
		"findings": len(r.Findings),
		"elapsed":  time.Since(start),
	}).Debug("audit complete")

	if format == "json" {
		if err := r.WriteJSON(w); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return 2
		}
		return 0
	}
	r.WriteMarkdown(w)
	return 0
}
