package main

import (
	"context"
	"fmt"
	"os"

	"github.com/acharjeesuvo/EvalMind/cmd"
)

func main() {
	if err := cmd.RootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
