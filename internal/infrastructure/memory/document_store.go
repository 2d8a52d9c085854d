package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
)

// Asegura que DocumentStore implementa repository.DocumentStore.
var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore backend en memoria: mismo contrato que los backends reales,
// pensado para modo development y tests. Las colecciones se crean
// implícitamente con la primera escritura.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]entity.Document
}

// NewDocumentStore construye el store vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string]map[string]entity.Document)}
}

// GetCollection devuelve todos los documentos de la colección con su id.
func (s *DocumentStore) GetCollection(ctx context.Context, collection string) ([]entity.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []entity.Document
	for id, doc := range s.collections[collection] {
		out := doc.Clone()
		out[entity.DocumentKeyID] = id
		docs = append(docs, out)
	}
	return docs, nil
}

// GetDocument devuelve el documento o (nil, nil) si no existe.
func (s *DocumentStore) GetDocument(ctx context.Context, collection, id string) (entity.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	out := doc.Clone()
	out[entity.DocumentKeyID] = strings.Clone(id)
	return out, nil
}

// CreateDocument upserta con id explícito o genera un UUID con id vacío.
//
// fasthttp reutiliza los buffers del request, así que collection e id pueden
// apuntar a memoria que el siguiente request reescribe: todo string que el
// store retiene debe ser copia propia.
func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, data map[string]any, id string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	} else {
		id = strings.Clone(id)
	}
	collection = strings.Clone(collection)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]entity.Document)
	}
	s.collections[collection][id] = entity.Document(data).Clone()
	return id, nil
}

// UpdateDocument aplica merge parcial superficial. domain.ErrNotFound si falta.
func (s *DocumentStore) UpdateDocument(ctx context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	merged := doc.Clone()
	merged.Merge(partial)
	s.collections[collection][id] = merged
	return nil
}

// DeleteDocument elimina el documento; borrar un id inexistente no es error.
func (s *DocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}
