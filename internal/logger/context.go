package logger

import (
	"context"
	"log/slog"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type contextKey string

const (
	commandContextKey contextKey = "command_context"
	loggerContextKey  contextKey = "logger"
)

// CommandContext describes one invocation of the CLI or one SSH session.
type CommandContext struct {
	Command   string
	Args      []string
	User      string
	Hostname  string
	Timestamp time.Time
	RequestID string
}

// NewCommandContext describes the running cobra command.
func NewCommandContext(cmd *cobra.Command, args []string) *CommandContext {
	cc := &CommandContext{
		Command:   cmd.CommandPath(),
		Args:      args,
		Timestamp: time.Now(),
		RequestID: uuid.NewString(),
	}
	if u, err := user.Current(); err == nil {
		cc.User = u.Username
	}
	if h, err := os.Hostname(); err == nil {
		cc.Hostname = h
	}
	return cc
}

// NewSessionContext describes an SSH session for user.
func NewSessionContext(user, remote string) *CommandContext {
	return &CommandContext{
		Command:   "session",
		User:      user,
		Hostname:  remote,
		Timestamp: time.Now(),
		RequestID: uuid.NewString(),
	}
}

// WithCommandContext stores cc in ctx.
func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, commandContextKey, cc)
}

// CommandContextFrom returns the CommandContext stored in ctx, or nil.
func CommandContextFrom(ctx context.Context) *CommandContext {
	cc, _ := ctx.Value(commandContextKey).(*CommandContext)
	return cc
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, l)
}

// LoggerFrom returns the Logger stored in ctx, or Default.
func LoggerFrom(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return l
	}
	return Default()
}

// LogAttrs returns cc as slog attributes.
func (cc *CommandContext) LogAttrs() []slog.Attr {
	if cc == nil {
		return nil
	}
	attrs := []slog.Attr{
		slog.String("request_id", cc.RequestID),
		slog.String("command", cc.Command),
		slog.String("user", cc.User),
		slog.String("hostname", cc.Hostname),
	}
	if len(cc.Args) > 0 {
		attrs = append(attrs, slog.Any("args", cc.Args))
	}
	return attrs
}

// Attach returns l annotated with cc's request id and command.
func (cc *CommandContext) Attach(l *Logger) *Logger {
	if cc == nil {
		return l
	}
	return l.With(slog.String("request_id", cc.RequestID), slog.String("command", cc.Command))
}
