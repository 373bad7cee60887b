// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	TextFormat             = "text"
	JSONFormat             = "json"
	defaultTimestampFormat = time.RFC3339

	LogRotationThresholdMB = 10
	LogRotationBackups     = 3
	MaxLogEntryLength      = 64000
)

// InitLogLevel configures the logging level.  The debug flag takes precedence if set,
// otherwise the logLevel flag (trace, debug, info, warn, error, fatal) is used.
func InitLogLevel(debug bool, logLevel string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
		return nil
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

// InitLogFormat configures the log format, allowing a choice of text or JSON.
func InitLogFormat(logFormat string) error {
	switch strings.ToLower(logFormat) {
	case TextFormat:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case JSONFormat:
		log.SetFormatter(&JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format: %s", logFormat)
	}
	return nil
}

// InitLogOutput redirects all log output to the supplied writer.
func InitLogOutput(output io.Writer) {
	log.SetOutput(output)
}

// InitLogFile sends log output to a size-rotated file in addition to stderr.
func InitLogFile(logFile string) (io.Closer, error) {
	if logFile == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	dir := filepath.Dir(logFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory %v; %v", dir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    LogRotationThresholdMB,
		MaxBackups: LogRotationBackups,
		Compress:   false,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &truncatingWriter{rotator}))

	log.WithFields(log.Fields{
		"logLevel":        log.GetLevel().String(),
		"logFileLocation": logFile,
	}).Debug("Initialized logging to file.")

	return rotator, nil
}

// truncatingWriter caps the length of each log entry.
type truncatingWriter struct {
	w io.Writer
}

func (t *truncatingWriter) Write(p []byte) (int, error) {
	if len(p) <= MaxLogEntryLength {
		return t.w.Write(p)
	}
	if _, err := t.w.Write(p[:MaxLogEntryLength]); err != nil {
		return 0, err
	}
	if _, err := t.w.Write([]byte("<truncated>\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

type JSONFormatter struct {
	// TimestampFormat sets the format used for marshaling timestamps.
	TimestampFormat string
	// DisableTimestamp allows disabling automatic timestamps in output
	DisableTimestamp bool
	// PrettyPrint will indent all json logs
	PrettyPrint bool
}

func (f *JSONFormatter) Format(entry *log.Entry) ([]byte, error) {
	data := make(map[string]string, len(entry.Data)+3)
	for k, v := range entry.Data {
		switch v := v.(type) {
		case error:
			// Otherwise errors are ignored by `encoding/json`
			data[k] = v.Error()
		default:
			data[k] = fmt.Sprintf("%+v", v)
		}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if !f.DisableTimestamp {
		data["@timestamp"] = entry.Time.Format(timestampFormat)
	}
	data["message"] = entry.Message
	data["level"] = entry.Level.String()

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	encoder := json.NewEncoder(b)
	if f.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON, %v", err)
	}

	return b.Bytes(), nil
}
