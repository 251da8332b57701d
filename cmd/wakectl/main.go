package main

import (
	"fmt"
	"os"

	"waked/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wakectl:", err)
		os.Exit(1)
	}
}
