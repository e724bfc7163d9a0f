package logger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestScopeCarriesID(t *testing.T) {
	t.Parallel()

	ctx := WithRequestScope(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))
}

func TestRequestIDWithoutScope(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", RequestID(context.Background()))
}

func TestAddFieldAccumulatesAndLastWriteWins(t *testing.T) {
	t.Parallel()

	ctx := WithRequestScope(context.Background(), "req-123")

	AddField(ctx, "op", "create_task")
	AddField(ctx, "task_id", "abc")
	AddField(ctx, "op", "update_task") // last write wins

	fields := Fields(ctx)
	assert.Equal(t, "update_task", fields["op"])
	assert.Equal(t, "abc", fields["task_id"])
	assert.Len(t, fields, 2)
}

func TestAddFieldWithoutScopeIsNoOp(t *testing.T) {
	t.Parallel()

	// Must not panic, and must not leak anywhere.
	AddField(context.Background(), "key", "value")
	assert.Nil(t, Fields(context.Background()))
}

func TestFieldsReturnsSnapshot(t *testing.T) {
	t.Parallel()

	ctx := WithRequestScope(context.Background(), "req-123")
	AddField(ctx, "a", 1)

	snapshot := Fields(ctx)
	snapshot["b"] = 2

	assert.Len(t, Fields(ctx), 1, "mutating a snapshot must not write back to the scope")
}

func TestScopesDoNotLeakAcrossRequests(t *testing.T) {
	t.Parallel()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)

	// Interleave many request scopes; each must see only its own fields.
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()

			id := fmt.Sprintf("req-%d", i)
			ctx := WithRequestScope(context.Background(), id)
			AddField(ctx, "index", i)

			require.Equal(t, id, RequestID(ctx))
			fields := Fields(ctx)
			require.Len(t, fields, 1)
			require.Equal(t, i, fields["index"])
		}(i)
	}

	wg.Wait()
}

func TestChildContextSharesScope(t *testing.T) {
	t.Parallel()

	type key struct{}

	ctx := WithRequestScope(context.Background(), "req-123")
	child := context.WithValue(ctx, key{}, "unrelated")

	// Fields added via a derived context surface on the same scope,
	// mirroring a handler that wraps the context before calling down.
	AddField(child, "from", "child")
	assert.Equal(t, "child", Fields(ctx)["from"])
	assert.Equal(t, "req-123", RequestID(child))
}
