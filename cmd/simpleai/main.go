// Package main provides the simpleai command line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("missing command")

type app struct {
	out    io.Writer
	logger *slog.Logger
}

func main() {
	a := &app{
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	if err := a.run(os.Args[1:]); err != nil {
		log.Fatalf("simpleai: %v", err)
	}
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}

	switch args[0] {
	case "xor":
		return a.xor(args[1:])
	case "train":
		return a.train(args[1:])
	case "auto":
		return a.auto(args[1:])
	case "predict":
		return a.predict(args[1:])
	case "version":
		fmt.Fprintf(a.out, "simpleai %s\n", version)
		return nil
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) usage() {
	fmt.Fprintln(a.out, "simpleai - feed-forward neural network tool")
	fmt.Fprintf(a.out, "Version: %s\n\n", version)
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  xor                  Train on the XOR example")
	fmt.Fprintln(a.out, "  train FILE           Train on a CSV file (last column is the target)")
	fmt.Fprintln(a.out, "  auto                 Discover CSV files in a directory and train a model for each")
	fmt.Fprintln(a.out, "  predict MODEL INPUT  Predict from comma-separated values or a CSV file")
	fmt.Fprintln(a.out, "  version              Show version")
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, "Run 'simpleai COMMAND -h' for command flags.")
}

// leadingPositionals removes up to n arguments before the first flag, so
// both "train data.csv -epochs 10" and "train -epochs 10 data.csv" work.
func leadingPositionals(args []string, n int) (positionals, rest []string) {
	for len(args) > 0 && len(positionals) < n && !isFlag(args[0]) {
		positionals = append(positionals, args[0])
		args = args[1:]
	}
	return positionals, args
}

// isFlag reports whether arg looks like a flag rather than a negative
// number such as "-0.5,1".
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	c := arg[1]
	return c != '.' && (c < '0' || c > '9')
}
