// Package logrus adapts a *logrus.Entry to the keyload.Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/keyload/keyload"
)

var _ keyload.Logger = Logger{}

type Logger struct{ E *logrus.Entry }

func (l Logger) Debug(msg string, f keyload.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}

func (l Logger) Info(msg string, f keyload.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}

func (l Logger) Warn(msg string, f keyload.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}

func (l Logger) Error(msg string, f keyload.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
