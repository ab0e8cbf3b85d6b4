package publisher

import (
	"context"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type EventPublisher interface {
	PublishAttendance(ctx context.Context, event *domain.AttendanceEvent) error
	PublishMessage(ctx context.Context, msg *domain.Message) error
}
