package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/assetwatch/pkg/style"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if err != errBuildFailed {
			fmt.Fprintln(os.Stderr, style.RenderError(err))
		}
		os.Exit(1)
	}
}
