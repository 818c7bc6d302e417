package poll

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRepeater_RunsImmediately(t *testing.T) {
	ran := make(chan struct{}, 4)
	rep, err := StartRepeater(time.Minute, func() { ran <- struct{}{} })
	require.NoError(t, err)
	defer rep.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never happened")
	}
}

func TestRepeater_StopIsIdempotent(t *testing.T) {
	rep, err := StartRepeater(time.Minute, func() {})
	require.NoError(t, err)
	rep.Stop()
	rep.Stop()
}

func TestRepeater_RejectsNonPositiveInterval(t *testing.T) {
	_, err := StartRepeater(0, func() {})
	require.Error(t, err)
}

func TestFanOut_VisitsEveryKeyIndependently(t *testing.T) {
	keys := []string{"A", "B", "C", "D"}

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	wg.Add(len(keys))
	FanOut(keys, func(key string) {
		defer wg.Done()
		if key == "A" {
			// A slow item must not block the others.
			time.Sleep(50 * time.Millisecond)
		}
		mu.Lock()
		seen[key] = true
		mu.Unlock()
	})
	wg.Wait()

	require.Len(t, seen, len(keys))
}
