package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/cmd"
)

func main() {
	err := cmd.NewRootCommand().ExecuteContext(context.Background())
	_ = zap.L().Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
