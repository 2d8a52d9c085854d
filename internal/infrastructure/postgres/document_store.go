package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// Canal de pg_notify en el que el store publica la colección mutada.
const NotifyChannel = "app_documents_changed"

// Asegura que DocumentStore implementa repository.DocumentStore.
var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore backend PostgreSQL del document store: una sola tabla
// genérica app_documents con columna jsonb y discriminador collection.
// Tras cada mutación emite pg_notify con la colección (change feed).
type DocumentStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDocumentStore construye el backend sobre el pool.
func NewDocumentStore(pool *pgxpool.Pool, log *logger.Logger) *DocumentStore {
	return &DocumentStore{pool: pool, log: log}
}

// GetCollection devuelve todos los documentos de la colección, cada uno con su id.
func (s *DocumentStore) GetCollection(ctx context.Context, collection string) ([]entity.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM app_documents WHERE collection = $1`, collection)
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []entity.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetDocument devuelve el documento o (nil, nil) si el id no existe.
func (s *DocumentStore) GetDocument(ctx context.Context, collection, id string) (entity.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM app_documents WHERE collection = $1 AND id = $2`, collection, id).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return decodeDocument(id, raw)
}

// CreateDocument inserta (o upserta si el id es explícito) y devuelve el id.
// Con id vacío se genera un UUID.
func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, data map[string]any, id string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO app_documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, id, raw)
	if err != nil {
		return "", fmt.Errorf("insert document %s/%s: %w", collection, id, err)
	}
	s.notify(ctx, collection)
	return id, nil
}

// UpdateDocument aplica merge parcial superficial vía el operador || de jsonb.
// Devuelve domain.ErrNotFound si el documento no existe.
func (s *DocumentStore) UpdateDocument(ctx context.Context, collection, id string, partial map[string]any) error {
	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("marshal partial: %w", err)
	}
	cmd, err := s.pool.Exec(ctx, `
		UPDATE app_documents SET data = data || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2`,
		collection, id, raw)
	if err != nil {
		return fmt.Errorf("update document %s/%s: %w", collection, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	s.notify(ctx, collection)
	return nil
}

// DeleteDocument elimina el documento; borrar un id inexistente no es error.
func (s *DocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM app_documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}
	s.notify(ctx, collection)
	return nil
}

// notify publica la colección mutada en el canal de cambios. Best-effort:
// un fallo de notificación no debe fallar la escritura ya confirmada.
func (s *DocumentStore) notify(ctx context.Context, collection string) {
	if _, err := s.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, NotifyChannel, collection); err != nil {
		s.log.Warn().Err(err).Str("collection", collection).Msg("pg_notify falló")
	}
}

func decodeDocument(id string, raw []byte) (entity.Document, error) {
	doc := entity.Document{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
	}
	doc[entity.DocumentKeyID] = id
	return doc, nil
}
