package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// ChangeFeed expone el canal nativo de cambios del backend PostgreSQL
// (pg_notify emitido por DocumentStore en cada mutación). No hay garantías
// de orden ni de entrega: una ráfaga de escrituras puede colapsar en una
// sola notificación para el consumidor.
type ChangeFeed struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewChangeFeed construye el feed sobre el pool.
func NewChangeFeed(pool *pgxpool.Pool, log *logger.Logger) *ChangeFeed {
	return &ChangeFeed{pool: pool, log: log}
}

// Listen toma una conexión dedicada, hace LISTEN y bloquea entregando la
// colección mutada a onChange por cada notificación. Retorna nil al cancelar
// el contexto; cualquier otro corte de conexión se devuelve como error y el
// caller decide si re-suscribirse.
func (f *ChangeFeed) Listen(ctx context.Context, onChange func(collection string)) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conexión para LISTEN: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", NotifyChannel, err)
	}
	f.log.Debug().Str("channel", NotifyChannel).Msg("suscrito al change feed")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait notification: %w", err)
		}
		onChange(n.Payload)
	}
}
