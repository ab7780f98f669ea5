// Package workflow is the sole writer of status transitions. It enforces
// the pharmacy approval state machine and the delivery status state
// machine on top of the injected record stores, and emits notification
// events as side effects that never fail the primary operation.
package workflow

import (
	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/notify"
	"pharmaDeliveryManagement/repository"
)

// Engine coordinates the record stores and the notification dispatcher.
type Engine struct {
	stores     *repository.Stores
	dispatcher notify.Dispatcher
	logger     *zap.Logger
	adminEmail string
}

// New creates an Engine. adminEmail is the fixed recipient for
// operational notifications (new registrations, delivery updates).
func New(stores *repository.Stores, dispatcher notify.Dispatcher, logger *zap.Logger, adminEmail string) *Engine {
	return &Engine{
		stores:     stores,
		dispatcher: dispatcher,
		logger:     logger,
		adminEmail: adminEmail,
	}
}
