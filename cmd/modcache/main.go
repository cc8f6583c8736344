package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/modcache/cmd/modcache/commands"
)

func main() {
	ctx := context.Background()

	cli := commands.New()
	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
