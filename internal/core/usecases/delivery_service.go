package usecases

import (
	"context"
	"log/slog"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/core/ports"
	"github.com/samirrijal/textmaps/internal/pkg/metrics"
)

// Suffix appended to the last step of a page when more pages remain.
const continueCue = ` (Reply "next" for next page)`

// DeliveryService is the pagination engine: it drains the pending step queue
// one page at a time and sends each step as its own message. Invoked
// synchronously for the first page and from the work-queue worker for every
// page after that.
type DeliveryService struct {
	queue    ports.StepQueueRepository
	sender   ports.Messenger
	jobs     ports.JobQueue
	pageSize int
}

// NewDeliveryService creates a new DeliveryService. pageSize is the number
// of steps per outbound batch.
func NewDeliveryService(queue ports.StepQueueRepository, sender ports.Messenger, jobs ports.JobQueue, pageSize int) *DeliveryService {
	if pageSize < 1 {
		pageSize = 1
	}
	return &DeliveryService{queue: queue, sender: sender, jobs: jobs, pageSize: pageSize}
}

// DeliverNextPage takes one page off the head of the user's queue and sends
// it, step by step, in order. The last step of the page carries the continue
// cue when more steps remain. An empty queue is a no-op: a duplicate trigger
// must never double-send. The page is consumed the moment it is dequeued;
// individual send failures are reported and counted but do not abort the
// remaining steps and do not put the page back.
func (s *DeliveryService) DeliverNextPage(ctx context.Context, userID string) error {
	page, remaining, err := s.queue.TakePage(ctx, userID, s.pageSize)
	if err != nil {
		return &domain.StorageError{Op: "take page", Err: err}
	}
	if len(page) == 0 {
		return nil
	}

	for i, step := range page {
		body := step.Text
		if i == len(page)-1 && remaining > 0 {
			body += continueCue
		}
		if err := s.sender.Send(ctx, userID, body, []string{step.ImageURL}); err != nil {
			metrics.SendFailures.Inc()
			slog.Error("step send failed", "user", userID, "error", err)
			continue
		}
		metrics.StepsSent.Inc()
	}

	metrics.PagesDelivered.Inc()
	slog.Info("page delivered", "user", userID, "steps", len(page), "remaining", remaining)
	return nil
}

// RequestContinuation enqueues a delivery job for the user's next pending
// page, in response to a "next"-style reply. It reports whether there was
// anything to continue; a reply with nothing pending falls through to normal
// message classification.
func (s *DeliveryService) RequestContinuation(ctx context.Context, userID string) (bool, error) {
	n, err := s.queue.Len(ctx, userID)
	if err != nil {
		return false, &domain.StorageError{Op: "queue length", Err: err}
	}
	if n == 0 {
		return false, nil
	}
	if err := s.jobs.EnqueueDelivery(ctx, userID); err != nil {
		return false, &domain.StorageError{Op: "enqueue delivery", Err: err}
	}
	return true, nil
}
