package usecases_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// ---- Mock LocationRepository ----

type mockLocationRepo struct {
	states map[string]domain.LocationState
	getErr error
	putErr error
	puts   int
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{states: make(map[string]domain.LocationState)}
}

func (m *mockLocationRepo) Get(ctx context.Context, userID string) (*domain.LocationState, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.states[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockLocationRepo) Put(ctx context.Context, userID string, state domain.LocationState) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.states[userID] = state
	return nil
}

// ---- In-memory StepQueueRepository ----

// memStepQueue mirrors the storage contract: TakePage is a single atomic
// read-and-trim under the lock.
type memStepQueue struct {
	mu     sync.Mutex
	queues map[string][]domain.DirectionStep
}

func newMemStepQueue() *memStepQueue {
	return &memStepQueue{queues: make(map[string][]domain.DirectionStep)}
}

func (q *memStepQueue) Replace(ctx context.Context, userID string, steps []domain.DirectionStep) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queues[userID] = append([]domain.DirectionStep(nil), steps...)
	return nil
}

func (q *memStepQueue) TakePage(ctx context.Context, userID string, pageSize int) ([]domain.DirectionStep, int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.queues[userID]
	if len(pending) == 0 {
		return nil, 0, nil
	}
	n := pageSize
	if n > len(pending) {
		n = len(pending)
	}
	page := append([]domain.DirectionStep(nil), pending[:n]...)
	q.queues[userID] = pending[n:]
	return page, len(q.queues[userID]), nil
}

func (q *memStepQueue) Len(ctx context.Context, userID string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queues[userID]), nil
}

// ---- Mock Messenger ----

type sentMessage struct {
	To    string
	Body  string
	Media []string
}

type mockMessenger struct {
	sent   []sentMessage
	failOn func(i int) error // error for the i-th send attempt, 0-based
}

func (m *mockMessenger) Send(ctx context.Context, to, body string, mediaURLs []string) error {
	i := len(m.sent)
	if m.failOn != nil {
		if err := m.failOn(i); err != nil {
			m.sent = append(m.sent, sentMessage{})
			return err
		}
	}
	m.sent = append(m.sent, sentMessage{To: to, Body: body, Media: mediaURLs})
	return nil
}

// ---- Mock Geocoder ----

type mockGeocoder struct {
	place string
	point domain.GeoPoint
	err   error
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (string, domain.GeoPoint, error) {
	if m.err != nil {
		return "", domain.GeoPoint{}, m.err
	}
	return m.place, m.point, nil
}

// ---- Mock RouteProvider ----

type mockRouteProvider struct {
	route domain.Route
	err   error
}

func (m *mockRouteProvider) Route(ctx context.Context, origin domain.GeoPoint, destination string) (domain.Route, error) {
	if m.err != nil {
		return domain.Route{}, m.err
	}
	return m.route, nil
}

// ---- Mock JobQueue ----

type mockJobQueue struct {
	enqueued []string
	err      error
}

func (m *mockJobQueue) EnqueueDelivery(ctx context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, userID)
	return nil
}

// ---- Stub ImageRenderer ----

type stubRenderer struct{}

func (stubRenderer) MapURL(p domain.GeoPoint, zoom int) string {
	return fmt.Sprintf("map://%.4f,%.4f@%d", p.Lat, p.Lon, zoom)
}

func (stubRenderer) StreetViewURL(p domain.GeoPoint, heading int) string {
	return fmt.Sprintf("sv://%.4f,%.4f@%d", p.Lat, p.Lon, heading)
}
