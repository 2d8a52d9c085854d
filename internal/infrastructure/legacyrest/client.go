package legacyrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tikprofil/tikprofil-api/internal/domain"
	"github.com/tikprofil/tikprofil-api/internal/domain/entity"
	"github.com/tikprofil/tikprofil-api/internal/domain/repository"
	"github.com/tikprofil/tikprofil-api/pkg/logger"
)

// Límite de respuesta: el endpoint legado no pagina y una colección grande
// no debe poder agotar la memoria del proceso.
const maxResponseBytes = 8 << 20 // 8 MiB

// Asegura que Client implementa repository.DocumentStore.
var _ repository.DocumentStore = (*Client)(nil)

// Client backend del document store contra el endpoint documental legado:
// cada documento se direcciona por segmentos de path /{collection}/{id},
// con una service key como Bearer. El merge parcial de PATCH lo resuelve
// el propio endpoint; este cliente no reintenta ni cachea nada.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	log        *logger.Logger
}

// Config credenciales del endpoint legado.
type Config struct {
	BaseURL    string
	ServiceKey string
}

// NewClient construye el cliente. BaseURL es obligatoria.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("legacyrest: base URL requerida")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("legacyrest: base URL inválida: %w", err)
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}, nil
}

// GetCollection devuelve todos los documentos de la colección.
func (c *Client) GetCollection(ctx context.Context, collection string) ([]entity.Document, error) {
	raw, status, err := c.request(ctx, http.MethodGet, path(collection), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// Colección jamás escrita: el endpoint la reporta como inexistente.
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, restError("get collection "+collection, status, raw)
	}
	var docs []entity.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return docs, nil
}

// GetDocument devuelve el documento o (nil, nil) en 404.
func (c *Client) GetDocument(ctx context.Context, collection, id string) (entity.Document, error) {
	raw, status, err := c.request(ctx, http.MethodGet, path(collection, id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, restError("get document "+collection+"/"+id, status, raw)
	}
	doc := entity.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}
	doc[entity.DocumentKeyID] = id
	return doc, nil
}

// CreateDocument crea (POST) o upserta con id explícito (PUT) y devuelve el id.
func (c *Client) CreateDocument(ctx context.Context, collection string, data map[string]any, id string) (string, error) {
	var raw []byte
	var status int
	var err error
	if id == "" {
		raw, status, err = c.request(ctx, http.MethodPost, path(collection), data)
	} else {
		raw, status, err = c.request(ctx, http.MethodPut, path(collection, id), data)
	}
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", restError("create document en "+collection, status, raw)
	}
	if id == "" {
		// El endpoint devuelve el documento creado; solo interesa el id generado.
		id = gjson.GetBytes(raw, "id").String()
		if id == "" {
			return "", fmt.Errorf("create document en %s: respuesta sin id", collection)
		}
	}
	return id, nil
}

// UpdateDocument aplica merge parcial (PATCH). domain.ErrNotFound en 404.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, partial map[string]any) error {
	raw, status, err := c.request(ctx, http.MethodPatch, path(collection, id), partial)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return restError("update document "+collection+"/"+id, status, raw)
	}
	return nil
}

// DeleteDocument elimina el documento; 404 no es error.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	raw, status, err := c.request(ctx, http.MethodDelete, path(collection, id), nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound || status == http.StatusOK || status == http.StatusNoContent {
		return nil
	}
	return restError("delete document "+collection+"/"+id, status, raw)
}

// request ejecuta la llamada HTTP y devuelve el body (acotado) y el status.
// Los errores de red se propagan tal cual; los de status los decide el caller
// porque 404 es un miss legítimo en varios verbos.
func (c *Client) request(ctx context.Context, method, p string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, p, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return raw, resp.StatusCode, nil
}

// restError arma el error de un status no esperado, extrayendo el mensaje
// del body si el endpoint lo incluye.
func restError(op string, status int, raw []byte) error {
	msg := gjson.GetBytes(raw, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(raw, "error").String()
	}
	if msg != "" {
		return fmt.Errorf("%s: status %d: %s", op, status, msg)
	}
	return fmt.Errorf("%s: status %d", op, status)
}

func path(segments ...string) string {
	p := ""
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
