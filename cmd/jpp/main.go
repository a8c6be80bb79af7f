// Command jpp evaluates a JSONPath query against a JSON document.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/midbel/jpp/jsonpath"
)

const version = "0.1.0"

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.Bool("help", false, "show usage")
	showVersion := fs.Bool("version", false, "show version")
	fs.BoolVar(help, "h", false, "show usage")
	fs.BoolVar(showVersion, "V", false, "show version")
	fs.Usage = usage

	if err := fs.Parse(os.Args[1:]); err != nil {
		usage()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *help {
		usage()
		return
	}
	if *showVersion {
		fmt.Println("jpp", version)
		return
	}

	if err := run(fs.Arg(0), fs.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jpp [--help|-h] [--version|-V] <QUERY> [FILE]")
}

func run(query, file string) error {
	if query == "" {
		usage()
		return fmt.Errorf("missing query")
	}

	r := os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	root, err := jsonpath.Decode(r)
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	jp, perr := jsonpath.Compile(query)
	if perr != nil {
		return fmt.Errorf("parse query: %w", perr)
	}

	nodes := jp.Query(&root)
	result := jsonpath.NewArray()
	for _, n := range nodes {
		result.Items = append(result.Items, *n)
	}

	ws := jsonpath.NewWriter(os.Stdout)
	return ws.Write(jsonpath.FromArray(result))
}
