package poll

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Repeater runs a task immediately and then on a fixed interval until
// stopped. Teardown does not wait for an in-flight run; the task is
// expected to gate its own state commits.
type Repeater struct {
	cron *cron.Cron
	once sync.Once
}

// StartRepeater registers and starts the periodic task. The first run is
// kicked off asynchronously right away.
func StartRepeater(interval time.Duration, task func()) (*Repeater, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("repeater interval must be positive, got %v", interval)
	}
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), task); err != nil {
		return nil, fmt.Errorf("register refresh task: %w", err)
	}
	c.Start()
	go task()
	return &Repeater{cron: c}, nil
}

// Stop cancels the interval timer. Safe to call more than once.
func (r *Repeater) Stop() {
	r.once.Do(func() {
		r.cron.Stop()
	})
}
