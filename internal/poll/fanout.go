package poll

// FanOut launches fn for each key on its own goroutine. Results merge
// independently as they resolve; a slow key never blocks or invalidates a
// faster one. Callers capture a gate ticket per key when stale results
// must be discarded.
func FanOut(keys []string, fn func(key string)) {
	for _, key := range keys {
		go fn(key)
	}
}
