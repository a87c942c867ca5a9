// Command ecofocus simulates the environmental impacts of garments.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/ecofocus/internal/cli"
	"github.com/rshade/ecofocus/pkg/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
