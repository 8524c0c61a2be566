package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock_Advances(t *testing.T) {
	clock := NewStepClock(time.Second)

	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, Epoch.Add(time.Second), clock.Now())

	clock.Reset()
	assert.Equal(t, Epoch, clock.Now())
}

func TestStepClock_Concurrent(t *testing.T) {
	clock := NewStepClock(time.Millisecond)

	var wg sync.WaitGroup
	seen := make(chan time.Time, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- clock.Now()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[time.Time]bool)
	for ts := range seen {
		unique[ts] = true
	}
	assert.Len(t, unique, 100)
}

func TestFixedIDGenerator(t *testing.T) {
	assert.Equal(t, "req-1", NewFixedIDGenerator("req-1").Generate())
	assert.Equal(t, "test-request-id", NewFixedIDGenerator("").Generate())
}

func TestSeedUsuarios(t *testing.T) {
	s := OpenStore(t)

	usuarios := SeedUsuarios(t, s)
	require.Len(t, usuarios, len(DefaultUsuarios))
	assert.Equal(t, "ana", usuarios[0].Login)
	assert.Equal(t, Epoch, usuarios[0].DataCriacao)
	assert.Equal(t, Epoch.Add(time.Second), usuarios[1].DataCriacao)

	hash, err := s.PasswordHash(context.Background(), usuarios[0].ID)
	require.NoError(t, err)
	assert.NoError(t, Passwords.Verify(hash, SeedPassword))
}

func TestSeedPerfis(t *testing.T) {
	s := OpenStore(t)

	perfis := SeedPerfis(t, s)
	require.Len(t, perfis, 3)
	assert.Equal(t, "leitor", perfis[2].Nome)
}
