/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"

	"github.com/statelayer/statetrie/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is a flag for commands that use the tool configuration.
var Config = &cli.StringFlag{
	Name:    "config-file",
	Aliases: []string{"c"},
	Usage:   "path to the configuration file",
}

// Debug is a flag for commands that allow debug mode usage.
var Debug = &cli.BoolFlag{
	Name:    "debug",
	Aliases: []string{"d"},
	Usage:   "enable debug logging (overrides configuration)",
}

// GetConfigFromContext reads the configuration file specified in the context.
// A missing flag yields the default configuration with an in-memory store.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	if path := ctx.String("config-file"); path != "" {
		return config.Load(path)
	}
	return config.Unmarshal(nil)
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function uses it as the log output.
func HandleLoggingParams(debug bool, cfg config.LoggerConfig) (*zap.Logger, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if cfg.LogPath != "" {
		cc.OutputPaths = []string{cfg.LogPath}
	}

	return cc.Build()
}
