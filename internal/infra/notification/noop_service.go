package notification

import (
	"context"
	"log/slog"

	"tastelocal/internal/domain/service"
)

type noopService struct {
	logger *slog.Logger
}

// NewNoopService returns a notification service that only logs, for
// environments without Firebase credentials.
func NewNoopService(logger *slog.Logger) service.NotificationService {
	return &noopService{logger: logger}
}

func (s *noopService) SendTopicNotification(ctx context.Context, topic, title, _ string, _ map[string]string) error {
	s.logger.DebugContext(ctx, "Push notification skipped", slog.String("topic", topic), slog.String("title", title))

	return nil
}
