package repository

import (
	"context"

	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
)

// DocumentStore puerto del almacén genérico de documentos. Lo implementan
// tres backends (tabla jsonb en PostgreSQL, endpoint documental legado por
// REST y memoria para dev/tests); los call sites son agnósticos al backend.
//
// Contrato:
//   - GetCollection devuelve todos los documentos de la colección, cada uno
//     con su id inyectado. Sin paginación, filtro ni orden garantizado.
//   - GetDocument devuelve (nil, nil) si el id no existe; nunca error por miss.
//   - CreateDocument con id explícito hace upsert; con id vacío el backend
//     genera uno y lo devuelve.
//   - UpdateDocument aplica merge parcial superficial, nunca replace completo.
//   - Los errores del backend se propagan sin reintentos, cache ni
//     transformación; el logging es best-effort del caller.
//
// El store NO aplica aislamiento multi-tenant: los callers filtran por
// businessId donde corresponda.
type DocumentStore interface {
	GetCollection(ctx context.Context, collection string) ([]entity.Document, error)
	GetDocument(ctx context.Context, collection, id string) (entity.Document, error)
	CreateDocument(ctx context.Context, collection string, data map[string]any, id string) (string, error)
	UpdateDocument(ctx context.Context, collection, id string, partial map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}
