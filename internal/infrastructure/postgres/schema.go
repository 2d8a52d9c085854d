package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PK compuesta: el id de un documento es único dentro de su colección,
// no globalmente (el mismo id puede existir en dos colecciones).
const schemaAppDocuments = `
CREATE TABLE IF NOT EXISTS app_documents (
	collection  text        NOT NULL,
	id          text        NOT NULL,
	data        jsonb       NOT NULL DEFAULT '{}'::jsonb,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_app_documents_collection ON app_documents (collection);
`

// EnsureSchema crea la tabla genérica de documentos si no existe.
// No hay más esquema que este: las colecciones se crean implícitamente
// con la primera escritura.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaAppDocuments); err != nil {
		return fmt.Errorf("ensure schema app_documents: %w", err)
	}
	return nil
}
