package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/tailor/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes user notices to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each notice via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n at Warn for warnings and Info otherwise.
// Returns nil (logging does not fail).
func (n *LogNotifier) Notify(notice model.Notice) error {
	level := slog.LevelInfo
	if notice.Level == model.NoticeWarning {
		level = slog.LevelWarn
	}
	n.logger.Log(context.Background(), level, notice.Message, "step", notice.Step, "kind", notice.Level.String())
	return nil
}
