// Package alerts delivers controller liveness notifications to operator
// webhooks.
package alerts

import "context"

// AlertService sends liveness alerts. Implementations decide transport
// and rate limiting; callers only report transitions.
type AlertService interface {
	Alert(ctx context.Context, alert *WebhookAlert) error
	IsEnabled() bool
}
