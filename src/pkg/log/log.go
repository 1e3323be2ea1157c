package log

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log wraps logrus so call sites carry a uniform (context, message, scope, meta)
// signature across usecases and background loops.
type Log struct {
	AppName string
	Logger  *logrus.Logger
}

var logger Log

// InitLogger builds the singleton logger from Viper.
func InitLogger(v *viper.Viper) {
	logger = Log{
		AppName: v.GetString("app.name"),
		Logger:  newLogrusLogger(v),
	}
}

// GetLogger returns the singleton.
func GetLogger() Log {
	return logger
}

// NewTestLogger returns a silent logger for package tests.
func NewTestLogger() Log {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return Log{AppName: "TEST", Logger: l}
}

func newLogrusLogger(v *viper.Viper) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func (l Log) fields(context, scope, meta string) logrus.Fields {
	_, file, line, _ := runtime.Caller(2)
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
		"file":    file,
		"line":    line,
	}
}

func (l Log) Info(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Info(message)
}

func (l Log) Error(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Error(message)
}

func (l Log) Debug(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Debug(message)
}
