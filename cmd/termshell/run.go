package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/termshell/internal/config"
	"github.com/sandevgo/termshell/pkg/frontend/stdin"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the shell on this terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		initEnv(ctx)
		cfg := config.NewAppConfig(ctx)
		proto := newShellPrototype(cfg)

		fe, err := stdin.New(proto)
		if err != nil {
			return err
		}
		defer fe.Shutdown(ctx)
		return fe.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
