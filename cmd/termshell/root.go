package main

import (
	"context"
	"os"

	"github.com/sandevgo/termshell/internal/config"
	"github.com/sandevgo/termshell/pkg/log"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "termshell",
	Short: "Termshell, an embeddable interactive command shell",
	Long:  `Termshell exposes a small set of named commands as an interactive console, over telnet or on the local terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || config.IsDebug())
}
