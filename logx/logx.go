package logx

import (
	"context"
	"io"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// Discard returns a logger that drops everything.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
}

// OrDefault returns log, or a discarding logger when log is nil.
func OrDefault(log pslog.Logger) pslog.Logger {
	if log == nil {
		return Discard()
	}
	return log
}

// WithSession annotates the logger with the session id and its tab counter.
func WithSession(log pslog.Logger, sessionID uint64, counter int) pslog.Logger {
	log = log.With("session", sessionID)
	if counter > 0 {
		log = log.With("counter", counter)
	}
	return log
}

// WithSlot annotates the logger with a notebook slot. Negative slots are omitted.
func WithSlot(log pslog.Logger, slot int) pslog.Logger {
	if slot >= 0 {
		log = log.With("slot", slot)
	}
	return log
}

// WithOp annotates the logger with the operation name.
func WithOp(log pslog.Logger, op string) pslog.Logger {
	if op != "" {
		log = log.With("op", op)
	}
	return log
}

// WithErr annotates the logger with an error when present.
func WithErr(log pslog.Logger, err error) pslog.Logger {
	if err != nil {
		log = log.With("err", err)
	}
	return log
}
