// Package tracing provides hooks that observe memory elements while a
// network settles.
package tracing

import (
	"github.com/sarchlab/digisim/instrumentation/hooking"
	"github.com/sarchlab/digisim/mem/ramsel"
	"github.com/sirupsen/logrus"
)

// NamedHookable is a hookable element with a name.
type NamedHookable interface {
	Name() string
	hooking.Hookable
}

// LogHook writes one structured log entry per write arm and write commit.
// Arms are logged at debug level, commits at info level.
type LogHook struct {
	log logrus.FieldLogger
}

// NewLogHook creates a LogHook that logs to l.
func NewLogHook(l logrus.FieldLogger) *LogHook {
	return &LogHook{log: l}
}

// Func logs the hook site.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	entry := h.log.WithFields(logrus.Fields{
		"component": domainName(ctx.Domain),
		"pos":       ctx.Pos.Name,
	})

	switch item := ctx.Item.(type) {
	case ramsel.WriteArm:
		entry.WithField("address", item.Address).Debug("write armed")
	case ramsel.WriteCommit:
		entry.WithFields(logrus.Fields{
			"address":  item.Address,
			"data":     item.Data,
			"previous": item.Previous,
		}).Info("word committed")
	}
}

func domainName(d hooking.Hookable) string {
	if named, ok := d.(NamedHookable); ok {
		return named.Name()
	}

	return ""
}
