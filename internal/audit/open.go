package audit

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// Open creates the event sink described by cfg.
func Open(cfg config.AuditConfig) (core.EventSink, error) {
	switch cfg.Type {
	case config.AuditLog, "":
		return NewLogSink(log.Logger), nil
	case config.AuditFile:
		fileSink, err := NewFileSink(cfg.Path)
		if err != nil {
			return nil, err
		}
		// file events are also visible in the process log
		return NewMultiSink(NewLogSink(log.Logger), fileSink), nil
	case config.AuditMemory:
		return NewMemorySink(), nil
	case config.AuditNone:
		return NewNoopSink(), nil
	default:
		return nil, fmt.Errorf("unknown audit type %q", cfg.Type)
	}
}
