package logconfig

import (
	"flag"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

var loglevel *int

// InitParam registers the loglevel command line flag. Call it before
// flag.Parse.
func InitParam() {
	loglevel = flag.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
}

// GetLogger returns a configured logger. The given level is used when
// InitParam was not called.
func GetLogger(level logrus.Level) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	if loglevel == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.Level(*loglevel))
	}

	formatter := new(prefixed.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	formatter.PrefixPadding = 20
	logger.SetFormatter(formatter)

	return logrus.NewEntry(logger)
}

// WithPrefix tags all output of the logger with a component prefix. A nil
// logger stays nil so components can pass their optional logger through
// without checking.
func WithPrefix(logger *logrus.Entry, prefix string) *logrus.Entry {
	if logger == nil {
		return nil
	}

	return logger.WithField("prefix", prefix)
}
