package id

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var crockford = regexp.MustCompile(`^[0-9A-HJ-NP-TV-Z]{26}$`)

func TestNewULID(t *testing.T) {
	t.Parallel()

	t.Run("valid format", func(t *testing.T) {
		t.Parallel()
		require.Regexp(t, crockford, NewULID())
	})

	t.Run("first char fits 3 bits", func(t *testing.T) {
		t.Parallel()
		require.LessOrEqual(t, NewULID()[0], byte('7'))
	})

	t.Run("known timestamp prefix", func(t *testing.T) {
		t.Parallel()
		// 1469918176385 ms is the reference example from the ULID docs.
		u := ulidAt(time.UnixMilli(1469918176385))
		require.Equal(t, "01ARYZ6S41", u[:10])
	})

	t.Run("sortable by time", func(t *testing.T) {
		t.Parallel()
		base := time.Now()
		earlier := ulidAt(base)
		later := ulidAt(base.Add(2 * time.Millisecond))
		require.Less(t, earlier[:10], later[:10])
	})

	t.Run("unique across goroutines", func(t *testing.T) {
		t.Parallel()

		const workers, perWorker = 8, 200
		var (
			mu   sync.Mutex
			seen = make(map[string]struct{}, workers*perWorker)
			wg   sync.WaitGroup
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perWorker {
					u := NewULID()
					mu.Lock()
					seen[u] = struct{}{}
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Len(t, seen, workers*perWorker)
	})
}

func TestNewMessageID(t *testing.T) {
	t.Parallel()

	raw := NewMessageID()
	parsed, err := uuid.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
	require.NotEqual(t, raw, NewMessageID())
}
