package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateMintsUUID(t *testing.T) {
	store := NewStore(time.Hour)

	sess, created := store.GetOrCreate("")
	require.True(t, created)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID)
	assert.NotNil(t, sess.State)

	again, created := store.GetOrCreate(sess.ID)
	assert.False(t, created)
	assert.Same(t, sess, again)
}

func TestUnknownIDCreatesSessionUnderThatID(t *testing.T) {
	store := NewStore(time.Hour)

	sess, created := store.GetOrCreate("client-supplied-id")
	assert.True(t, created)
	assert.Equal(t, "client-supplied-id", sess.ID)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	stale, _ := store.GetOrCreate("")
	stale.lastSeen = time.Now().Add(-time.Minute)
	fresh, _ := store.GetOrCreate("")

	evicted := store.Sweep()
	assert.Equal(t, 1, evicted)
	assert.Nil(t, store.Get(stale.ID))
	assert.NotNil(t, store.Get(fresh.ID))
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentGetOrCreate(t *testing.T) {
	store := NewStore(time.Hour)

	var wg sync.WaitGroup
	sessions := make([]*Session, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i], _ = store.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
	for _, sess := range sessions {
		assert.Same(t, sessions[0], sess)
	}
}
