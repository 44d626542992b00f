package main

import (
	"fmt"
	"os"

	"github.com/titpetric/althtml/cmd/althtml/commands/compile"
	"github.com/titpetric/althtml/cmd/althtml/commands/serve"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: althtml <compile|serve> [args]\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = compile.Run(os.Args[2:])
	case "serve":
		err = serve.Run(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		if !compile.IsCompileFailure(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
