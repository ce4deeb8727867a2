package session

import (
	"sync"
	"time"
)

// countdown invokes tick at a fixed interval until cancelled, or until tick
// returns false. Cancellation is idempotent and safe from inside a tick; a
// tick that already fired while cancel ran is expected to be made harmless
// by state checks inside the callback.
type countdown struct {
	stop chan struct{}
	once sync.Once
}

func startCountdown(interval time.Duration, tick func() bool) *countdown {
	c := &countdown{stop: make(chan struct{})}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-t.C:
				if !tick() {
					return
				}
			}
		}
	}()
	return c
}

func (c *countdown) cancel() {
	c.once.Do(func() { close(c.stop) })
}
