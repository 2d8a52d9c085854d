package realtime

import (
	"sync"
	"time"
)

// Debouncer colapsa una ráfaga de eventos en una sola invocación de fn
// tras un período de silencio. Lo alimenta el change feed del backend
// (~300ms de ventana) como alternativa de menor latencia al polling.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer construye el debouncer.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)arma la ventana: fn corre una sola vez, delay después del
// último Trigger.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancela una ventana pendiente (teardown).
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
