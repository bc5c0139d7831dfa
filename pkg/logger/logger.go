package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithGuestID adds guest ID to logger context
func (l *Logger) WithGuestID(guestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("guest_id", guestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogGuestCreated logs when a guest record is created
func (l *Logger) LogGuestCreated(ctx context.Context, guestID, propertyID string) {
	l.Logger.InfoContext(ctx,
		"Guest Created",
		slog.String("guest_id", guestID),
		slog.String("property_id", propertyID),
	)
}

// LogStatusTransition logs an accepted guest status transition
func (l *Logger) LogStatusTransition(ctx context.Context, guestID, fromStage, toStage string) {
	l.Logger.InfoContext(ctx,
		"Guest Status Transition",
		slog.String("guest_id", guestID),
		slog.String("from_stage", fromStage),
		slog.String("to_stage", toStage),
	)
}

// LogStatusRejected logs a rejected guest status transition
func (l *Logger) LogStatusRejected(ctx context.Context, guestID, reason string) {
	l.Logger.WarnContext(ctx,
		"Guest Status Transition Rejected",
		slog.String("guest_id", guestID),
		slog.String("reason", reason),
	)
}

// LogRequestDecision logs an accept/decline decision on a check-in/out request
func (l *Logger) LogRequestDecision(ctx context.Context, requestID, guestID, decision string) {
	l.Logger.InfoContext(ctx,
		"Check-In/Out Request Decision",
		slog.String("request_id", requestID),
		slog.String("guest_id", guestID),
		slog.String("decision", decision),
	)
}

// LogMessageDispatched logs a dispatched guest SMS
func (l *Logger) LogMessageDispatched(ctx context.Context, guestID, template string) {
	l.Logger.InfoContext(ctx,
		"Guest Message Dispatched",
		slog.String("guest_id", guestID),
		slog.String("template", template),
	)
}

// LogMessageFailed logs an SMS dispatch failure; the status transition is already
// committed at this point and stays committed.
func (l *Logger) LogMessageFailed(ctx context.Context, guestID, template string, err error) {
	l.Logger.ErrorContext(ctx,
		"Guest Message Dispatch Failed",
		slog.String("guest_id", guestID),
		slog.String("template", template),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, staffID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("staff_id", staffID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
