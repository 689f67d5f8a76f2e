// Package logger builds the logrus logger shared by the commands.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out, and also to filePath when set.
// An unknown level falls back to info. The returned close func releases the
// log file, if one was opened.
func New(levelStr string, filePath string, out io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	closer := func() error { return nil }
	writers := []io.Writer{out}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, file)
		closer = file.Close
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log, closer, nil
}
