package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sandevgo/termshell/internal/config"
	"github.com/sandevgo/termshell/pkg/log"
	"github.com/sandevgo/termshell/pkg/shell"
)

// newShellPrototype builds the demo command table shared by both front
// ends.
func newShellPrototype(cfg *config.AppConfig) *shell.Prototype {
	reg := shell.NewRegistry()

	reg.MustRegister("hello",
		"Hello world\n\nThis command accepts arguments: hello tutu will display tutu",
		func(ctx context.Context, args []string) (string, error) {
			if len(args) > 0 {
				return strings.Join(args, " "), nil
			}
			return "world\n", nil
		})

	proto := shell.NewPrototype(reg)
	if cfg.Prompt != "" {
		proto.Prompt = cfg.Prompt
	}
	if cfg.Welcome != "" {
		proto.Welcome = cfg.Welcome + "\n"
	}
	return proto
}

// initEnv loads a .env file from the working directory when present.
func initEnv(ctx context.Context) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load .env file")
	}
}
