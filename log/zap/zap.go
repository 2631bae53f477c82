// Package zap adapts a *zap.Logger to the keyload.Logger interface.
package zap

import (
	"go.uber.org/zap"

	"github.com/keyload/keyload"
)

var _ keyload.Logger = Logger{}

type Logger struct{ L *zap.Logger }

func (z Logger) Debug(msg string, f keyload.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f keyload.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f keyload.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f keyload.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f keyload.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
