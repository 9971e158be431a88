package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5ix/cmd/es5run/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
