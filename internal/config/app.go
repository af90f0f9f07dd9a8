package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/termshell/pkg/log"
)

// AppConfig configures the demo binary. The library itself takes all of
// this as explicit parameters; nothing under pkg/ reads the
// environment.
type AppConfig struct {
	ListenAddr string `env:"TERMSHELL_LISTEN_ADDR" envDefault:"127.0.0.1:4444"`
	Prompt     string `env:"TERMSHELL_PROMPT" envDefault:"> "`
	Welcome    string `env:"TERMSHELL_WELCOME" envDefault:"Welcome!"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}
