// Package realtime implementa el "pseudo-realtime" de la plataforma:
// polling a intervalo fijo más un debounce sobre el change feed nativo del
// backend. Sin garantías de orden ni de entrega: una ráfaga de escrituras
// puede colapsar en un solo refetch y entre ticks se observan lecturas
// stale.
package realtime

import (
	"context"
	"time"

	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// Task refetch/refresco que ejecuta el watcher en cada tick.
type Task func(ctx context.Context) error

// Watcher tarea programada explícita con cancelación: ejecuta la Task de
// inmediato y luego en cada intervalo. Kick fuerza una corrida fuera de
// turno (la usa el debounce del change feed). Los errores de la Task se
// loguean y el ciclo continúa.
type Watcher struct {
	interval time.Duration
	task     Task
	log      *logger.Logger
	kick     chan struct{}
}

// NewWatcher construye el watcher. El intervalo por defecto de la
// plataforma es 5s (config CACHE_POLL_SECONDS).
func NewWatcher(interval time.Duration, task Task, log *logger.Logger) *Watcher {
	return &Watcher{
		interval: interval,
		task:     task,
		log:      log,
		kick:     make(chan struct{}, 1),
	}
}

// Run bloquea ejecutando el ciclo hasta que se cancele el contexto.
// El timer se detiene al salir; una Task en vuelo no se interrumpe.
func (w *Watcher) Run(ctx context.Context) {
	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		case <-w.kick:
			w.runOnce(ctx)
		}
	}
}

// Kick fuerza una corrida inmediata. No bloquea: si ya hay un kick
// pendiente, los siguientes colapsan en uno.
func (w *Watcher) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.task(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Warn().Err(err).Msg("watcher: refetch falló")
	}
}
