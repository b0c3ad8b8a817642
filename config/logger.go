package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const appName = "html2wikijs"

var (
	logLevels = []string{"none", "normal", "debug"}
	logModes  = []string{"", "append", "overwrite"}
)

type LoggerConfig struct {
	Level       string `yaml:"level"`
	Destination string `yaml:"destination,omitempty"`
	Mode        string `yaml:"mode,omitempty"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Validate checks levels and modes.
func (conf *LoggingConfig) Validate() error {
	for name, lc := range map[string]LoggerConfig{"console": conf.ConsoleLogger, "file": conf.FileLogger} {
		if !slices.Contains(logLevels, lc.Level) {
			return fmt.Errorf("logging.%s.level: unknown level %q", name, lc.Level)
		}
		if !slices.Contains(logModes, lc.Mode) {
			return fmt.Errorf("logging.%s.mode: unknown mode %q", name, lc.Mode)
		}
	}
	if conf.FileLogger.Level != "none" && conf.FileLogger.Destination == "" {
		return errors.New("logging.file.destination: required when file logging is enabled")
	}
	return nil
}

// Prepare returns our standard logger. Console output goes to stderr only,
// stdout is left to the program's own messages. The returned function flushes
// the logger and closes the log file, if any.
func (conf *LoggingConfig) Prepare() (*zap.Logger, func() error, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	consoleEncoder := newEncoder(ec) // filter errorVerbose

	var consoleCore zapcore.Core
	switch conf.ConsoleLogger.Level {
	case "normal":
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	case "debug":
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	default:
		consoleCore = zapcore.NewNopCore()
	}

	var (
		fileCore = zapcore.NewNopCore()
		level    zapcore.Level
		logFile  *os.File
	)
	switch conf.FileLogger.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "normal":
		level = zapcore.InfoLevel
	}
	if conf.FileLogger.Level == "debug" || conf.FileLogger.Level == "normal" {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.FileLogger.Mode == "overwrite" {
			flags |= os.O_TRUNC
		} else {
			flags |= os.O_APPEND
		}
		f, err := os.OpenFile(conf.FileLogger.Destination, flags, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
		}
		logFile = f
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), level)
	}

	log := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller()).Named(appName)
	closer := func() error {
		// syncing a console stream fails on some terminals, ignore it
		_ = log.Sync()
		if logFile == nil {
			return nil
		}
		err := logFile.Close()
		logFile = nil
		return err
	}
	return log, closer, nil
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// When logging errors to console do not output verbose messages.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			e := f.Interface.(error)
			f.Interface = errors.New(e.Error())
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
