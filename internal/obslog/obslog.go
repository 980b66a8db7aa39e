/*
Copyright 2025 The JQL Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package obslog provides configurable zap logger creation for the jql
// CLI, adapted from github.com/antflydb/antfly-go/libaf/logging. The
// core selector/group/path/filter/walker packages never import this;
// logging is wired in only at the CLI boundary (cmd/jql), per the
// concurrency/purity note in spec §5.
package obslog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the logger's output format.
type Style string

const (
	StyleTerminal Style = "terminal"
	StyleJSON     Style = "json"
	StyleLogfmt   Style = "logfmt"
	StyleNoop     Style = "noop"
)

// Config controls logger construction; the zero value is terminal
// style at info level.
type Config struct {
	Style Style
	Level string
}

// New builds a zap logger per c. An unparseable Level falls back to
// info; an unknown Style falls back to terminal.
func New(c Config) *zap.Logger {
	style := c.Style
	if style == "" {
		style = StyleTerminal
	}

	logLevel := zapcore.InfoLevel
	if c.Level != "" {
		if lvl, err := zapcore.ParseLevel(c.Level); err == nil {
			logLevel = lvl
		}
	}

	var (
		logger *zap.Logger
		err    error
	)

	switch style {
	case StyleNoop:
		logger = zap.NewNop()
	case StyleJSON:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err = cfg.Build(zap.AddCaller())
	case StyleLogfmt:
		encoderConfig := zapcore.EncoderConfig{
			TimeKey:    "ts",
			LevelKey:   "lvl",
			NameKey:    "logger",
			CallerKey:  "caller",
			MessageKey: "msg",
			LineEnding: zapcore.DefaultLineEnding,
		}
		core := zapcore.NewCore(
			newLogfmtEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			logLevel,
		)
		logger = zap.New(core, zap.AddCaller())
	case StyleTerminal:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err = cfg.Build(zap.AddCaller())
	default:
		fmt.Fprintf(os.Stderr, "obslog: unknown style %q, using terminal\n", style)
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err = cfg.Build(zap.AddCaller())
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "obslog: failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
