// optable prints how operators are dispatched between the built-in types
// and the classes declared in a type table.
//
// usage: optable [-v level] [--op add ...] [--plain] [table.yaml]
//
// For every requested operator it prints a matrix of resolution plans, one
// row per left operand type and one column per right operand type, followed
// by a summary. Method implementations in the table are taken from a fixed
// catalog: decline, left, right and const_<number>.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-isatty"
	"github.com/thought-machine/go-flags"
	"gopkg.in/op/go-logging.v1"

	pyrt "github.com/jeff5/very-slow-jython-sub016/runtime"
)

var log = logging.MustGetLogger("optable")

var opts struct {
	Verbosity string   `short:"v" long:"verbosity" description:"Log level: critical, error, warning, notice, info or debug. Overrides log_level in the table"`
	Ops       []string `long:"op" default:"add" description:"Operator to tabulate, as a name (add), dunder name (__add__) or symbol (+). May be repeated"`
	Plain     bool     `long:"plain" description:"Never colour the output"`
	Args      struct {
		Table string `positional-arg-name:"table" description:"YAML type table declaring extra classes"`
	} `positional-args:"true"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	color := !opts.Plain && isTerminal(os.Stdout)
	if err := run(os.Stdout, opts.Args.Table, opts.Ops, opts.Verbosity, color); err != nil {
		log.Fatalf("%s", err)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// run loads the table at path, if any, and writes a plan matrix for each
// operator to w.
func run(w io.Writer, path string, opNames []string, verbosity string, color bool) error {
	var table *pyrt.TypeTable
	if path != "" {
		t, err := pyrt.LoadTypeTable(path)
		if err != nil {
			return err
		}
		table = t
		if verbosity == "" {
			verbosity = table.LogLevel
		}
	}
	if err := initLogging(verbosity, color && isTerminal(os.Stderr)); err != nil {
		return err
	}
	ops := make([]pyrt.Op, 0, len(opNames))
	for _, name := range opNames {
		op, err := pyrt.ParseOp(name)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	types := pyrt.BuiltinTypes()
	if table != nil {
		declared, err := table.Build(pyrt.NewRegistry(filepath.Base(path)), catalog{})
		if err != nil {
			return fmt.Errorf("building %s: %w", path, err)
		}
		log.Info("%s: declared %s", path, english.Plural(len(declared), "class", "classes"))
		types = append(types, declared...)
	}
	var resolved, failed int
	for _, op := range ops {
		t, err := tabulate(op, types)
		if err != nil {
			return err
		}
		if err := t.write(w, color); err != nil {
			return err
		}
		fmt.Fprintln(w)
		r, f := t.counts()
		resolved += r
		failed += f
	}
	_, err := fmt.Fprintf(w, "%s plans, %s unsupported across %s and %s\n",
		humanize.Comma(int64(resolved)), humanize.Comma(int64(failed)),
		english.Plural(len(types), "type", ""), english.Plural(len(ops), "operator", ""))
	return err
}

// initLogging sends log output to stderr at the named level, warning by
// default.
func initLogging(level string, color bool) error {
	if level == "" {
		level = "warning"
	}
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	format := "%{time:15:04:05.000} %{level:7s} %{module}: %{message}"
	if color {
		format = "%{color}" + format + "%{color:reset}"
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}
