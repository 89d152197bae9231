package main

import (
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	// Home is the directory holding the ledger state.
	Home string `env:"CUSTODY_HOME,expand" envDefault:"${HOME}/.custody"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `env:"CUSTODY_LOG_LEVEL" envDefault:"error"`
	// Key is the path of the private key file signing messages.
	Key string `env:"CUSTODY_KEY,expand" envDefault:"${HOME}/.custody.priv.key"`
	// MetricsAddr is the address the serve command exposes metrics on.
	// Metrics are not exposed when empty.
	MetricsAddr string `env:"CUSTODY_METRICS_ADDR"`
}

func loadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrapf(errors.ErrInput, "config: %s", err)
	}
	return c, nil
}

// newLogger returns a logfmt logger writing to w, filtered by level.
func newLogger(w io.Writer, level string) (log.Logger, error) {
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), allow), nil
}
