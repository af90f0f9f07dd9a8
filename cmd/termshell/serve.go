package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/termshell/internal/config"
	"github.com/sandevgo/termshell/internal/lineedit"
	"github.com/sandevgo/termshell/internal/sched"
	"github.com/sandevgo/termshell/internal/telnetd"
	"github.com/sandevgo/termshell/pkg/frontend/telnet"
	"github.com/sandevgo/termshell/pkg/log"
	"github.com/sandevgo/termshell/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the shell over telnet",
	Long:  `Listens for telnet connections and gives each one its own line-edited shell session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		initEnv(ctx)
		cfg := config.NewAppConfig(ctx)
		proto := newShellPrototype(cfg)

		loop := sched.NewLoop()
		factory := telnet.NewFrontend(proto, lineedit.NewConsole, loop)
		server := telnetd.NewServer(cfg.ListenAddr, telnet.DefaultAcceptorOptions(), factory)

		services := []srv.Service{
			server,
			srv.NewCleanup(func() error {
				loop.Close()
				return nil
			}),
		}
		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		log.FromCtx(ctx).Info().Msg("termshell has been shut down")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
