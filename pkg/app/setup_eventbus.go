package app

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/events"
)

// setupEventBus registers the audit handlers with the event bus.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	log := a.Deps.Logger.With("context", "audit")

	a.Deps.EventBus.Subscribe(
		events.EventTypeStatementCreated.String(),
		func(_ context.Context, e events.Event) error {
			sc, ok := e.(events.StatementCreated)
			if !ok {
				return nil
			}
			attrs := []any{
				"statementID", sc.StatementID,
				"userID", sc.UserID,
				"type", sc.OpType,
				"amount", sc.Amount,
			}
			if sc.SenderID != nil {
				attrs = append(attrs, "senderID", *sc.SenderID)
			}
			log.Info("Statement recorded", attrs...)
			return nil
		},
	)
	a.Deps.EventBus.Subscribe(
		events.EventTypeUserRegistered.String(),
		func(_ context.Context, e events.Event) error {
			if ur, ok := e.(events.UserRegistered); ok {
				log.Info("User registered", "userID", ur.UserID)
			}
			return nil
		},
	)
}
