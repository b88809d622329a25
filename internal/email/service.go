package email

import (
	"context"

	"github.com/simecdev/simec-api/internal/model"
)

// Service dispatches notification messages. Implementations return an error
// on failure; callers decide whether the send counts as done.
type Service interface {
	SendNotification(ctx context.Context, msg *model.NotificationMessage) error
}
