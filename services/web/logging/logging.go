package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 2
	maxBackups = 1
)

// Open returns a size-capped log file at path. One backup is kept.
func Open(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
}

// Setup tees the standard logger to stdout and a rotating file at path.
// Gin's request log goes to the returned writer as well.
func Setup(path string) (*lumberjack.Logger, io.Writer, error) {
	lj := Open(path)
	// lumberjack opens lazily; touch the file so a bad path fails at startup.
	if _, err := lj.Write(nil); err != nil {
		return nil, nil, err
	}
	multi := io.MultiWriter(os.Stdout, lj)
	log.SetOutput(multi)
	return lj, multi, nil
}
