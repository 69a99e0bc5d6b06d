package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/textmaps/internal/core/domain"
)

// Lua keeps replace and take-page each a single server-side operation.
// Earlier designs that issued LRANGE and LTRIM as two round trips could
// double-send a page when a duplicate delivery trigger raced the trim.
var (
	replaceScript = valkey.NewLuaScript(`
redis.call('DEL', KEYS[1])
if #ARGV > 0 then
	redis.call('RPUSH', KEYS[1], unpack(ARGV))
end
return redis.call('LLEN', KEYS[1])
`)

	takePageScript = valkey.NewLuaScript(`
local page = redis.call('LRANGE', KEYS[1], 0, tonumber(ARGV[1]) - 1)
if #page > 0 then
	redis.call('LTRIM', KEYS[1], tonumber(ARGV[1]), -1)
end
return {page, redis.call('LLEN', KEYS[1])}
`)
)

// StepQueueRepo implements ports.StepQueueRepository on a Valkey list of
// JSON-encoded steps per user.
type StepQueueRepo struct {
	c *Client
}

// NewStepQueueRepo creates a new StepQueueRepo.
func NewStepQueueRepo(c *Client) *StepQueueRepo {
	return &StepQueueRepo{c: c}
}

func stepsKey(userID string) string {
	return "steps:" + userID
}

// Replace atomically discards any prior queue for the user and stores the
// new ordered sequence.
func (r *StepQueueRepo) Replace(ctx context.Context, userID string, steps []domain.DirectionStep) error {
	encoded := make([]string, 0, len(steps))
	for _, step := range steps {
		data, err := json.Marshal(step)
		if err != nil {
			return fmt.Errorf("encode step: %w", err)
		}
		encoded = append(encoded, string(data))
	}

	res := replaceScript.Exec(ctx, r.c.client, []string{stepsKey(userID)}, encoded)
	if err := res.Error(); err != nil {
		return fmt.Errorf("replace steps for %s: %w", userID, err)
	}
	return nil
}

// TakePage removes and returns up to pageSize steps from the head of the
// queue, in order, plus the count still pending. An absent or drained queue
// yields an empty page and remaining 0.
func (r *StepQueueRepo) TakePage(ctx context.Context, userID string, pageSize int) ([]domain.DirectionStep, int, error) {
	if pageSize < 1 {
		return nil, 0, fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}

	res := takePageScript.Exec(ctx, r.c.client,
		[]string{stepsKey(userID)}, []string{strconv.Itoa(pageSize)})
	arr, err := res.ToArray()
	if err != nil {
		return nil, 0, fmt.Errorf("take page for %s: %w", userID, err)
	}
	if len(arr) != 2 {
		return nil, 0, fmt.Errorf("take page for %s: unexpected reply shape (%d elements)", userID, len(arr))
	}

	raw, err := arr[0].AsStrSlice()
	if err != nil {
		return nil, 0, fmt.Errorf("take page for %s: %w", userID, err)
	}
	remaining, err := arr[1].AsInt64()
	if err != nil {
		return nil, 0, fmt.Errorf("take page for %s: %w", userID, err)
	}

	steps := make([]domain.DirectionStep, 0, len(raw))
	for _, item := range raw {
		var step domain.DirectionStep
		if err := json.Unmarshal([]byte(item), &step); err != nil {
			return nil, 0, fmt.Errorf("decode step for %s: %w", userID, err)
		}
		steps = append(steps, step)
	}
	return steps, int(remaining), nil
}

// Len reports how many steps are pending for the user.
func (r *StepQueueRepo) Len(ctx context.Context, userID string) (int, error) {
	cl := r.c.client
	n, err := cl.Do(ctx, cl.B().Llen().Key(stepsKey(userID)).Build()).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("llen %s: %w", userID, err)
	}
	return int(n), nil
}
