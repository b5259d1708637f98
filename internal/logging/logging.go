// Package logging wires zerolog the way the teacher's lib/log.go does:
// pretty console output by default, plus an optional append-only file sink
// (no rotation) toggled through viper keys rather than flags.
package logging

import (
	"io"
	"os"
	"runtime"

	colorable "github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const timeFormat = "2006-01-02T15:04:05.000"

// Setup installs the global zerolog logger per the current viper config:
// logging.console.format ("pretty"|"json"), logging.file.enabled,
// logging.file.path, and debug toggles the global level to Debug.
func Setup(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if viper.GetString("logging.console.format") == "json" {
		writers = append(writers, os.Stdout)
	} else if runtime.GOOS == "windows" {
		writers = append(writers, zerolog.ConsoleWriter{Out: colorable.NewColorableStdout(), TimeFormat: timeFormat})
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat})
	}

	if viper.GetBool("logging.file.enabled") {
		path := viper.GetString("logging.file.path")
		if path == "" {
			path = "pasiphae.log"
		}
		if f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644); err == nil {
			writers = append(writers, f)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
