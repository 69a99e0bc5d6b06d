package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samirrijal/textmaps/internal/core/domain"
	"github.com/samirrijal/textmaps/internal/core/usecases"
)

func makeSteps(n int) []domain.DirectionStep {
	steps := make([]domain.DirectionStep, n)
	for i := range steps {
		steps[i] = domain.DirectionStep{
			Text:     fmt.Sprintf("%d. step", i+1),
			ImageURL: fmt.Sprintf("sv://step-%d", i+1),
		}
	}
	return steps
}

func TestDeliverNextPage_FiveStepsPageSizeThree(t *testing.T) {
	queue := newMemStepQueue()
	sender := &mockMessenger{}
	jobs := &mockJobQueue{}
	svc := usecases.NewDeliveryService(queue, sender, jobs, 3)

	_ = queue.Replace(context.Background(), "u", makeSteps(5))

	// Page 1: steps 1-3, cue on step 3, two remaining.
	if err := svc.DeliverNextPage(context.Background(), "u"); err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("page 1 sent %d messages, want 3", len(sender.sent))
	}
	if sender.sent[0].Body != "1. step" || sender.sent[1].Body != "2. step" {
		t.Errorf("head messages = %+v", sender.sent[:2])
	}
	if !strings.HasSuffix(sender.sent[2].Body, `(Reply "next" for next page)`) {
		t.Errorf("last of page 1 missing continue cue: %q", sender.sent[2].Body)
	}
	if n, _ := queue.Len(context.Background(), "u"); n != 2 {
		t.Errorf("remaining = %d, want 2", n)
	}

	// Page 2: steps 4-5, no cue on the final step.
	if err := svc.DeliverNextPage(context.Background(), "u"); err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(sender.sent) != 5 {
		t.Fatalf("total sent %d, want 5", len(sender.sent))
	}
	if got := sender.sent[4].Body; got != "5. step" {
		t.Errorf("final message = %q, want no suffix", got)
	}
}

func TestDeliverNextPage_EmptyQueueIsNoOp(t *testing.T) {
	queue := newMemStepQueue()
	sender := &mockMessenger{}
	svc := usecases.NewDeliveryService(queue, sender, &mockJobQueue{}, 3)

	if err := svc.DeliverNextPage(context.Background(), "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages from an empty queue", len(sender.sent))
	}
}

func TestDeliverNextPage_SendFailureDoesNotAbortPage(t *testing.T) {
	queue := newMemStepQueue()
	sender := &mockMessenger{
		failOn: func(i int) error {
			if i == 0 {
				return &domain.DeliveryError{To: "u", Err: errors.New("boom")}
			}
			return nil
		},
	}
	svc := usecases.NewDeliveryService(queue, sender, &mockJobQueue{}, 3)

	_ = queue.Replace(context.Background(), "u", makeSteps(3))

	if err := svc.DeliverNextPage(context.Background(), "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All three attempts made, and the page stays consumed.
	if len(sender.sent) != 3 {
		t.Errorf("attempts = %d, want 3", len(sender.sent))
	}
	if n, _ := queue.Len(context.Background(), "u"); n != 0 {
		t.Errorf("queue not drained after failed send: %d left", n)
	}
}

func TestDeliverNextPage_SinglePageNoCue(t *testing.T) {
	queue := newMemStepQueue()
	sender := &mockMessenger{}
	svc := usecases.NewDeliveryService(queue, sender, &mockJobQueue{}, 10)

	_ = queue.Replace(context.Background(), "u", makeSteps(4))

	if err := svc.DeliverNextPage(context.Background(), "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, msg := range sender.sent {
		if strings.Contains(msg.Body, "Reply") {
			t.Errorf("unexpected cue on %q", msg.Body)
		}
	}
}

func TestRequestContinuation(t *testing.T) {
	queue := newMemStepQueue()
	jobs := &mockJobQueue{}
	svc := usecases.NewDeliveryService(queue, &mockMessenger{}, jobs, 3)

	// Nothing pending: not handled, nothing enqueued.
	handled, err := svc.RequestContinuation(context.Background(), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled || len(jobs.enqueued) != 0 {
		t.Errorf("handled=%v enqueued=%v with empty queue", handled, jobs.enqueued)
	}

	_ = queue.Replace(context.Background(), "u", makeSteps(2))
	handled, err = svc.RequestContinuation(context.Background(), "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handled {
		t.Error("continuation not handled with steps pending")
	}
	if len(jobs.enqueued) != 1 || jobs.enqueued[0] != "u" {
		t.Errorf("enqueued = %v", jobs.enqueued)
	}
}

func TestTakePage_ExhaustiveDrain(t *testing.T) {
	// Concatenated pages reproduce the original sequence exactly, for page
	// sizes that do and don't divide the total.
	for _, pageSize := range []int{1, 2, 3, 5, 7} {
		queue := newMemStepQueue()
		original := makeSteps(7)
		_ = queue.Replace(context.Background(), "u", original)

		var drained []domain.DirectionStep
		for {
			page, _, err := queue.TakePage(context.Background(), "u", pageSize)
			if err != nil {
				t.Fatalf("pageSize %d: %v", pageSize, err)
			}
			if len(page) == 0 {
				break
			}
			drained = append(drained, page...)
		}

		if len(drained) != len(original) {
			t.Fatalf("pageSize %d: drained %d, want %d", pageSize, len(drained), len(original))
		}
		for i := range original {
			if drained[i] != original[i] {
				t.Errorf("pageSize %d: item %d = %+v, want %+v", pageSize, i, drained[i], original[i])
			}
		}
	}
}

func TestReplace_DiscardsPriorQueue(t *testing.T) {
	queue := newMemStepQueue()
	_ = queue.Replace(context.Background(), "u", makeSteps(5))

	second := []domain.DirectionStep{
		{Text: "1. other route", ImageURL: "sv://other-1"},
		{Text: "2. other route", ImageURL: "sv://other-2"},
	}
	_ = queue.Replace(context.Background(), "u", second)

	page, remaining, err := queue.TakePage(context.Background(), "u", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 0 || len(page) != 2 {
		t.Fatalf("page=%d remaining=%d, want 2/0", len(page), remaining)
	}
	for _, step := range page {
		if !strings.Contains(step.Text, "other route") {
			t.Errorf("item from discarded queue leaked: %+v", step)
		}
	}
}
