// Command parse_routes prints the HTTP routes registered in one Go source
// file as a JSON array. It exits non-zero when the file cannot be parsed.
//
//	go build -o route_parser/parse_routes ./route_parser
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tristendillon/gohb/core/ast"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: parse_routes <file.go>")
		os.Exit(1)
	}

	routes, err := ast.ParseFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := json.NewEncoder(os.Stdout).Encode(routes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
