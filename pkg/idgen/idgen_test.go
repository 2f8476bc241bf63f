package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceIsMonotonic(t *testing.T) {
	seq := NewSequence(1)
	assert.Equal(t, "1", seq.NextID())
	assert.Equal(t, "2", seq.NextID())

	seq.Observe("10")
	assert.Equal(t, "11", seq.NextID())

	seq.Observe("3")
	seq.Observe("not-a-number")
	assert.Equal(t, "12", seq.NextID())
}

func TestSequenceConcurrentCallersGetDistinctIDs(t *testing.T) {
	seq := NewSequence(1)
	const workers, perWorker = 8, 250

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := seq.NextID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestFromStrategy(t *testing.T) {
	gen, err := FromStrategy("uuid")
	require.NoError(t, err)
	_, err = uuid.Parse(gen.NextID())
	require.NoError(t, err)

	gen, err = FromStrategy("")
	require.NoError(t, err)
	assert.IsType(t, &Sequence{}, gen)

	_, err = FromStrategy("snowflake")
	assert.Error(t, err)
}

func TestUnusedSkipsTakenIDs(t *testing.T) {
	taken := map[string]bool{"1": true, "2": true}
	id, err := Unused(NewSequence(1), func(id string) (bool, error) { return taken[id], nil })
	require.NoError(t, err)
	assert.Equal(t, "3", id)
}

func TestUnusedGivesUp(t *testing.T) {
	_, err := Unused(constant("x"), func(string) (bool, error) { return true, nil })
	assert.Error(t, err)
}

type constant string

func (c constant) NextID() string { return string(c) }
