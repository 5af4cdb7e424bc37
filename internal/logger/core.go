package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore tees every entry written to the wrapped core into the async DB writer
type DBCore struct {
	zapcore.Core
	writer *DBLogWriter
}

// NewDBCore wraps an existing core (console/JSON) and adds DB logging
func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

// With keeps the tee when child loggers add fields
func (c *DBCore) With(fields []zapcore.Field) zapcore.Core {
	return &DBCore{
		Core:   c.Core.With(fields),
		writer: c.writer,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var ip, complaintID, actorID string

	for _, f := range fields {
		switch f.Key {
		case "ip":
			ip = f.String
		case "complaint_id":
			complaintID = f.String
		case "actor_id":
			actorID = f.String
		}
	}

	c.writer.AddLog(LogEntry{
		Level:       entry.Level,
		Message:     entry.Message,
		IpAddress:   ip,
		ComplaintID: complaintID,
		ActorID:     actorID,
		Caller:      entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
