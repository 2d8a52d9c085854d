package entity

import "time"

// AuditEntry registro de auditoría de una mutación. Escribirlo es
// best-effort: un fallo al auditar jamás falla la operación principal.
type AuditEntry struct {
	ID         string
	BusinessID string // vacío en acciones del panel de administración
	ActorID    string
	ActorRole  Role
	Action     string // create, update, delete, login, force_logout, ...
	Collection string
	DocumentID string
	CreatedAt  time.Time
}
