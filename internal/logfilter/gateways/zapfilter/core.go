// Package zapfilter installs a logger-name decision into zap's filter chain.
// It wraps a zapcore.Core and drops entries whose logger name is denied
// before they reach the wrapped core.
package zapfilter

import (
	"go.uber.org/zap/zapcore"

	"github.com/haukened/lognamefilter/internal/logfilter/domain"
)

// Decider classifies a logger name.
type Decider interface {
	DecideName(name string) domain.Decision
}

// Core is a zapcore.Core that consults a Decider before delegating.
type Core struct {
	zapcore.Core
	decider Decider
}

// NewCore wraps next so that entries denied by d are dropped.
// With a nil decider next is returned as is.
func NewCore(next zapcore.Core, d Decider) zapcore.Core {
	if d == nil {
		return next
	}
	return &Core{Core: next, decider: d}
}

// Check drops denied entries by returning ce without adding this core.
func (c *Core) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.decider.DecideName(entry.LoggerName).IsDeny() {
		return ce
	}
	return c.Core.Check(entry, ce)
}

// With returns a child core that keeps the same decider.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	return &Core{Core: c.Core.With(fields), decider: c.decider}
}

// WrapCore returns an option-friendly wrapper for zap.WrapCore.
func WrapCore(d Decider) func(zapcore.Core) zapcore.Core {
	return func(next zapcore.Core) zapcore.Core {
		return NewCore(next, d)
	}
}
