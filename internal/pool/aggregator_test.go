package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_MergeSerializesConcurrentWrites(t *testing.T) {
	var agg Aggregator
	counts := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Merge(func() { counts["k"]++ })
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counts["k"])
}
