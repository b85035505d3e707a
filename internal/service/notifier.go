package service

import (
	"context"
	"time"

	"dormhub/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier pushes maintenance-request events to an external endpoint (the
// facilities team's intake system). Delivery is best effort: failures are
// logged, never surfaced to the tenant's operation.
type Notifier interface {
	MaintenanceEvent(ctx context.Context, event string, req domain.MaintenanceRequest)
}

// NopNotifier is used when the webhook is disabled.
type NopNotifier struct{}

func (NopNotifier) MaintenanceEvent(context.Context, string, domain.MaintenanceRequest) {}

type webhookNotifier struct {
	client *resty.Client
	logger *zap.Logger
}

func NewWebhookNotifier(url string, logger *zap.Logger) Notifier {
	client := resty.New().
		SetBaseURL(url).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &webhookNotifier{client: client, logger: logger}
}

type maintenanceEventPayload struct {
	Event   string                    `json:"event"`
	Request domain.MaintenanceRequest `json:"request"`
}

func (n *webhookNotifier) MaintenanceEvent(ctx context.Context, event string, req domain.MaintenanceRequest) {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(maintenanceEventPayload{Event: event, Request: req}).
		Post("")
	if err != nil {
		n.logger.Warn("maintenance webhook failed",
			zap.String("event", event),
			zap.String("request_id", req.ID),
			zap.Error(err))
		return
	}
	if resp.IsError() {
		n.logger.Warn("maintenance webhook rejected",
			zap.String("event", event),
			zap.String("request_id", req.ID),
			zap.Int("status", resp.StatusCode()))
	}
}
