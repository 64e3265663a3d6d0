package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHook answers GET and SET NX in memory so no server is dialled.
type memoryHook struct {
	data map[string]string
	ttls map[string]time.Duration
	fail error
}

func newMemoryClient(t *testing.T) (*redis.Client, *memoryHook) {
	t.Helper()
	hook := &memoryHook{data: map[string]string{}, ttls: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client, hook
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		if h.fail != nil {
			cmd.SetErr(h.fail)
			return h.fail
		}

		args := cmd.Args()
		switch cmd.Name() {
		case "get":
			c := cmd.(*redis.StringCmd)
			v, ok := h.data[fmt.Sprint(args[1])]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case "set":
			c := cmd.(*redis.BoolCmd)
			key := fmt.Sprint(args[1])
			if _, exists := h.data[key]; exists {
				c.SetVal(false)
				return nil
			}
			h.data[key] = fmt.Sprint(args[2])
			if len(args) > 4 && args[3] == "ex" {
				if secs, ok := args[4].(int64); ok {
					h.ttls[key] = time.Duration(secs) * time.Second
				}
			}
			c.SetVal(true)
		default:
			err := fmt.Errorf("unexpected command %q", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	client, _ := newMemoryClient(t)
	store := NewIdempotencyStore(client, time.Hour)

	id, found, err := store.Lookup(context.Background(), "key-1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	client, hook := newMemoryClient(t)
	store := NewIdempotencyStore(client, time.Hour)

	require.NoError(t, store.Remember(context.Background(), "key-1", "app-1"))

	id, found, err := store.Lookup(context.Background(), "key-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "app-1", id)
	assert.Equal(t, time.Hour, hook.ttls["idempotency:apply:key-1"])
}

func TestIdempotencyStore_FirstWriterWins(t *testing.T) {
	client, _ := newMemoryClient(t)
	store := NewIdempotencyStore(client, time.Hour)

	require.NoError(t, store.Remember(context.Background(), "key-1", "app-1"))
	require.NoError(t, store.Remember(context.Background(), "key-1", "app-2"))

	id, _, err := store.Lookup(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", id)
}

func TestIdempotencyStore_Errors(t *testing.T) {
	client, hook := newMemoryClient(t)
	hook.fail = errors.New("connection reset")
	store := NewIdempotencyStore(client, 0)

	_, _, err := store.Lookup(context.Background(), "key-1")
	assert.ErrorIs(t, err, hook.fail)

	err = store.Remember(context.Background(), "key-1", "app-1")
	assert.ErrorIs(t, err, hook.fail)
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	store := NewIdempotencyStore(nil, 0)
	assert.Equal(t, defaultIdempotencyTTL, store.ttl)
}
