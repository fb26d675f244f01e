package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the global zerolog logger. Output always goes to the
// console; when filePath is non-empty it is mirrored to a size-rotated file.
func Setup(filePath string) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}

	var w io.Writer = console
	if filePath != "" {
		w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
