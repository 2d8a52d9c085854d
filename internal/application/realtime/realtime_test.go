package realtime_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tikprofil/tikprofil-api/internal/application/realtime"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

func TestWatcher_EjecutaDeInmediatoYEnCadaIntervalo(t *testing.T) {
	var runs atomic.Int32
	w := realtime.NewWatcher(20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(90 * time.Millisecond)
	cancel()
	<-done

	// Una corrida inmediata más al menos dos ticks.
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestWatcher_KickForzaCorridaFueraDeTurno(t *testing.T) {
	var runs atomic.Int32
	w := realtime.NewWatcher(time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Esperar la corrida inmediata y luego forzar otra con Kick.
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	w.Kick()
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

// Un error de la Task se loguea y el ciclo sigue corriendo.
func TestWatcher_ErrorNoDetieneElCiclo(t *testing.T) {
	var runs atomic.Int32
	w := realtime.NewWatcher(15*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("refetch falló")
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

// Una ráfaga de Triggers colapsa en una sola invocación, delay después del
// último.
func TestDebouncer_ColapsaRafaga(t *testing.T) {
	var calls atomic.Int32
	d := realtime.NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Sin más triggers no hay más invocaciones.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_StopCancelaVentanaPendiente(t *testing.T) {
	var calls atomic.Int32
	d := realtime.NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
