package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Manager owns the process logger: colored console output, a no-color
// copy in the session log file, and an optional GELF stream to Graylog.
type Manager struct {
	logger  zerolog.Logger
	graylog *gelf.Writer
}

// NewManager creates an unconfigured logging manager. Until Setup runs
// the logger discards everything.
func NewManager() *Manager {
	return &Manager{logger: zerolog.Nop()}
}

// ParseLevel converts a config log level string to a zerolog level.
// Unknown strings select info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the multi-writer logger. file may be nil when no session
// log file could be opened; graylogAddr may be empty to skip GELF.
func (m *Manager) Setup(file io.Writer, level string, graylogAddr string) error {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		// console format with colors to console
		zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		// console format without colors to file
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if graylogAddr != "" {
		gw, err := gelf.NewWriter(graylogAddr)
		if err != nil {
			return err
		}
		m.graylog = gw
		writers = append(writers, gw)
	}

	mlw := zerolog.MultiLevelWriter(writers...)
	m.logger = zerolog.New(mlw).With().Timestamp().Logger()
	m.logger.Info().Str("loglevel", m.logger.GetLevel().String()).Msg("Logging set up")
	return nil
}

// Logger returns the configured logger.
func (m *Manager) Logger() zerolog.Logger {
	return m.logger
}

// Close shuts down the GELF stream if one was opened.
func (m *Manager) Close() error {
	if m.graylog != nil {
		return m.graylog.Close()
	}
	return nil
}
