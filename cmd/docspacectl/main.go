package main

import (
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/docspace/docspace/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
