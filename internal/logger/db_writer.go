package logger

import (
	"context"
	"fmt"
	"time"

	"seedcare/internal/config"
	"seedcare/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level       zapcore.Level
	Message     string
	IpAddress   string
	ComplaintID string
	ActorID     string
	Caller      string // Function name
}

// LogRecord is the persisted form in the app_logs collection
type LogRecord struct {
	AppID        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	IpAddress    string    `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	ComplaintID  string    `bson:"complaint_id,omitempty" json:"complaint_id,omitempty"`
	ActorID      string    `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	collection *mongo.Collection
	logChan    chan LogEntry
	appId      string
	minLevel   zapcore.Level
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		collection: mongodb.DB.Collection("app_logs"),
		logChan:    make(chan LogEntry, 1000),
		appId:      cfg.AppId,
		minLevel:   zapcore.InfoLevel,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap core, never blocks the caller
func (w *DBLogWriter) AddLog(entry LogEntry) {
	if entry.Level < w.minLevel {
		return
	}
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := LogRecord{
			AppID:        w.appId,
			Message:      entry.Message,
			IpAddress:    entry.IpAddress,
			ComplaintID:  entry.ComplaintID,
			ActorID:      entry.ActorID,
			Caller:       entry.Caller,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = w.collection.InsertOne(ctx, record)
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
