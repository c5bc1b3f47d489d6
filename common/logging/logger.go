package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const logFileName = "asset_repo.log"
const timestampFormat = "2006-01-02 15:04:05.000 Z07:00"

type utcFormatter struct {
	logrus.Formatter
}

func (f utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.Formatter.Format(entry)
}

// Setup configures the standard logger for stdout and, when dir is set to something
// other than "" or "-", a daily rotated file kept for two weeks. Calling it again
// replaces any file hook installed earlier.
func Setup(dir string, colors bool, json bool, level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	formatter := newFormatter(colors, json)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	logrus.SetOutput(os.Stdout)
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	if dir == "" || dir == "-" {
		return nil
	}
	hook, err := newFileHook(dir, formatter)
	if err != nil {
		return err
	}
	logrus.AddHook(hook)
	return nil
}

func newFormatter(colors bool, json bool) logrus.Formatter {
	if json {
		return &utcFormatter{&logrus.JSONFormatter{TimestampFormat: timestampFormat}}
	}
	return &utcFormatter{&logrus.TextFormatter{
		TimestampFormat:  timestampFormat,
		FullTimestamp:    true,
		ForceColors:      colors,
		DisableColors:    !colors,
		QuoteEmptyFields: true,
	}}
}

func newFileHook(dir string, formatter logrus.Formatter) (logrus.Hook, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	logFile := filepath.Join(dir, logFileName)
	writer, err := rotatelogs.New(
		logFile+".%Y%m%d",
		rotatelogs.WithLinkName(logFile),
		rotatelogs.WithMaxAge(14*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	writers := make(lfshook.WriterMap, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		writers[l] = writer
	}
	return lfshook.NewHook(writers, formatter), nil
}
