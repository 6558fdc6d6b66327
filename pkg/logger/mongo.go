package logger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

// NewMongoMonitor returns a command monitor that logs MongoDB commands to zap.
// Failed commands are logged at error level, commands slower than
// slowThreshold at warn level and everything else at debug level.
// A zero slowThreshold disables slow-command warnings.
func NewMongoMonitor(l *zap.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	l = l.Named("mongo")

	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			WithContext(ctx, l).Debug("mongo command started",
				zap.String("command", evt.CommandName),
				zap.String("database", evt.DatabaseName),
				zap.Int64("mongo_request_id", evt.RequestID),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			log := WithContext(ctx, l)
			fields := []zap.Field{
				zap.String("command", evt.CommandName),
				zap.Int64("mongo_request_id", evt.RequestID),
				zap.Duration("elapsed", evt.Duration),
			}
			if slowThreshold != 0 && evt.Duration > slowThreshold {
				log.Warn("mongo slow command", append(fields, zap.Duration("threshold", slowThreshold))...)
				return
			}
			log.Debug("mongo command", fields...)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			WithContext(ctx, l).Error("mongo command failed",
				zap.String("command", evt.CommandName),
				zap.Int64("mongo_request_id", evt.RequestID),
				zap.Duration("elapsed", evt.Duration),
				zap.String("failure", evt.Failure),
			)
		},
	}
}
