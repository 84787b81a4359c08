package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "modelkit CLI\n\nUsage:\n  modelkit convert -to json|yaml [-in file]\n\nReads a JSON or YAML document (stdin by default) and re-emits it in the\nrequested canonical encoding: sorted-key 2-space JSON or safe YAML.")
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var in string
	var to string
	fs.StringVar(&in, "in", "-", "input file, or - for stdin")
	fs.StringVar(&to, "to", "json", "output encoding: json or yaml")
	_ = fs.Parse(args)

	data, err := readInput(in)
	if err != nil {
		fatalf("reading input: %v", err)
	}

	var doc any
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		err = gojson.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		fatalf("parsing input: %v", err)
	}

	var out []byte
	switch to {
	case "json":
		out, err = gojson.MarshalIndent(doc, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(doc)
	default:
		fatalf("unsupported output encoding %q", to)
	}
	if err != nil {
		fatalf("encoding output: %v", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		fatalf("writing output: %v", err)
	}
}

func readInput(in string) ([]byte, error) {
	if in == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(in)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "modelkit: "+format+"\n", a...)
	os.Exit(1)
}
