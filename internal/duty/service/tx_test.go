package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dErrors "stargate/pkg/domain-errors"
)

func TestShardedTxSerializesSameName(t *testing.T) {
	tx := NewShardedTx()

	var inWork int
	var maxInWork int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.RunInTx(context.Background(), "Jane Smith", func(context.Context) error {
				mu.Lock()
				inWork++
				if inWork > maxInWork {
					maxInWork = inWork
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inWork--
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxInWork, "work for one person must never overlap")
}

func TestShardedTxCancelledContext(t *testing.T) {
	tx := NewShardedTx()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := tx.RunInTx(ctx, "Jane Smith", func(context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	require.False(t, called, "work must not start on a dead context")
}

func TestShardedTxPropagatesWorkError(t *testing.T) {
	tx := NewShardedTx()

	want := dErrors.New(dErrors.CodeValidation, "rank cannot be null or empty")
	err := tx.RunInTx(context.Background(), "Jane Smith", func(context.Context) error {
		return want
	})
	require.ErrorIs(t, err, want)
}

func TestShardedTxAppliesDeadline(t *testing.T) {
	tx := NewShardedTx()

	err := tx.RunInTx(context.Background(), "Jane Smith", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		require.True(t, ok, "work context should carry a deadline")
		return nil
	})
	require.NoError(t, err)
}
