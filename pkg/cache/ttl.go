package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL cache en memoria con expiración fija por entrada y reloj inyectable.
// Es advisory: no hay single-flight, dos misses concurrentes sobre la misma
// clave pueden disparar dos refetch y el último Set gana.
type TTL struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New crea el cache con el TTL dado y el reloj real.
func New(ttl time.Duration) *TTL {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock crea el cache con un reloj inyectado (tests).
func NewWithClock(ttl time.Duration, now func() time.Time) *TTL {
	return &TTL{ttl: ttl, now: now, entries: make(map[string]entry)}
}

// Get devuelve el valor si existe y no expiró. Una entrada vencida se
// elimina en el acto.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set guarda el valor con el TTL del cache. La clave se copia porque puede
// llegar apuntando a un buffer de request que fasthttp reutiliza.
func (c *TTL) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.Clone(key)] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate elimina una clave.
func (c *TTL) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateAll vacía el cache completo.
func (c *TTL) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// PurgeExpired elimina las entradas vencidas y devuelve cuántas quitó.
// Lo invoca el scheduler de mantenimiento; Get ya purga perezosamente.
func (c *TTL) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	purged := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			purged++
		}
	}
	return purged
}

// Len cantidad de entradas vivas o vencidas aún no purgadas.
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
