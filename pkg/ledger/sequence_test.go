package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSequence(t *testing.T) {
	t.Run("starts with given value", func(t *testing.T) {
		seq := NewSequence(1)
		assert.Equal(t, int64(1), seq.Next())
		assert.Equal(t, int64(2), seq.Next())
		assert.Equal(t, int64(3), seq.Next())
	})
	t.Run("unique under concurrency", func(t *testing.T) {
		seq := NewSequence(10)
		const workers = 20
		const perWorker = 50
		var mu sync.Mutex
		seen := map[int64]bool{}
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					next := seq.Next()
					mu.Lock()
					seen[next] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Len(t, seen, workers*perWorker)
		assert.True(t, seen[10])
		assert.True(t, seen[10+workers*perWorker-1])
	})
}
