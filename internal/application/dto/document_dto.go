package dto

// CreateDocumentRequest alta de un documento en una colección. Con ID
// explícito la operación es upsert; sin ID el backend genera uno.
type CreateDocumentRequest struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// CreateDocumentResponse id resultante de la creación.
type CreateDocumentResponse struct {
	ID string `json:"id"`
}

// DocumentListResponse documentos de una colección (sin orden garantizado).
type DocumentListResponse struct {
	Items []map[string]any `json:"items"`
}
