package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/repository"
)

type eventStore interface {
	ListDueDispatch(ctx context.Context, now time.Time, limit int32) ([]*entity.ReservationEvent, error)
	UpdateDispatchState(ctx context.Context, event *entity.ReservationEvent) error
}

type eventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload interface{}) error
}

// RunExpirePendingBatch cancels PENDING reservations whose window already
// started without a successful payment. Each reservation is re-checked
// under its row lock, so a payment racing the expiry wins or loses
// cleanly.
func (s *ReservationService) RunExpirePendingBatch(ctx context.Context) error {
	now := time.Now().UTC()
	items, err := s.reservations.ListStalePending(ctx, now, s.batchSize())
	if err != nil {
		return err
	}

	var firstErr error
	for _, stale := range items {
		if stale == nil {
			continue
		}

		err := s.store.InTx(ctx, func(tx *repository.Tx) error {
			item, err := tx.Reservations.FindByIDForUpdate(ctx, stale.ID)
			if err != nil {
				return err
			}
			if item == nil || item.Status != entity.ReservationStatusPending {
				return nil
			}

			expiredAt := time.Now().UTC()
			oldStatus := item.Status
			item.Status = entity.ReservationStatusCancelled
			item.UpdatedAt = expiredAt

			if err := tx.Reservations.Update(ctx, item); err != nil {
				return err
			}
			return s.recordEvent(ctx, tx, item, "reservation_expired", &oldStatus, expiredAt)
		})
		if err != nil {
			firstErr = keepFirstErr(firstErr, err)
		}
	}

	return firstErr
}

// RunDispatchEventsBatch drains due outbox rows to the broker. Publish
// failures are retried with the configured interval until the attempt
// budget is exhausted.
func (s *ReservationService) RunDispatchEventsBatch(ctx context.Context, events eventStore, publisher eventPublisher) error {
	now := time.Now().UTC()
	items, err := events.ListDueDispatch(ctx, now, s.batchSize())
	if err != nil {
		return err
	}

	var firstErr error
	for _, event := range items {
		if event == nil {
			continue
		}
		if err := s.dispatchEvent(ctx, events, publisher, event, now); err != nil {
			firstErr = keepFirstErr(firstErr, err)
		}
	}

	return firstErr
}

func (s *ReservationService) dispatchEvent(
	ctx context.Context,
	events eventStore,
	publisher eventPublisher,
	event *entity.ReservationEvent,
	now time.Time,
) error {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(event.PayloadJSON), &payload); err != nil {
		return s.recordDispatchFailure(ctx, events, event, now, err)
	}

	routingKey := "reservation." + event.EventType
	if err := publisher.PublishJSON(ctx, routingKey, payload); err != nil {
		return s.recordDispatchFailure(ctx, events, event, now, err)
	}

	event.DispatchStatus = entity.EventDispatchSuccess
	event.DispatchNextAt = nil
	event.DispatchLastErr = nil
	return events.UpdateDispatchState(ctx, event)
}

func (s *ReservationService) recordDispatchFailure(
	ctx context.Context,
	events eventStore,
	event *entity.ReservationEvent,
	now time.Time,
	dispatchErr error,
) error {
	event.DispatchAttempts++
	trimmed := truncate(dispatchErr.Error(), 1024)
	event.DispatchLastErr = &trimmed

	maxAttempts := s.bookingCfg.EventMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	if event.DispatchAttempts >= maxAttempts {
		event.DispatchStatus = entity.EventDispatchFailed
		event.DispatchNextAt = nil
	} else {
		retryInterval := s.bookingCfg.EventRetryInterval
		if retryInterval <= 0 {
			retryInterval = 5 * time.Minute
		}
		next := now.Add(retryInterval)
		event.DispatchStatus = entity.EventDispatchPending
		event.DispatchNextAt = &next
	}

	if err := events.UpdateDispatchState(ctx, event); err != nil {
		return fmt.Errorf("record dispatch failure: %w", err)
	}
	return dispatchErr
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func keepFirstErr(current error, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
