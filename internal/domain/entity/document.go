package entity

import (
	"strings"
	"time"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

// DocumentStatus estado de un dossier. Las transiciones son libres.
type DocumentStatus string

const (
	DocumentActive   DocumentStatus = "ACTIVE"
	DocumentArchived DocumentStatus = "ARCHIVED"
	DocumentClosed   DocumentStatus = "CLOSED"
)

// ParseDocumentStatus valida el estado recibido.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch st := DocumentStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case DocumentActive, DocumentArchived, DocumentClosed:
		return st, nil
	}
	return "", domain.ErrInvalidStatus
}

// Document dossier (asunto legal). Contiene listas de tareas.
type Document struct {
	ID            string
	Reference     string
	Title         string
	ClientID      string
	CreatorID     string
	ResponsableID string // vacío = sin responsable
	DepartmentID  string
	Status        DocumentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive solo en ACTIVE se crean listas, tareas y entradas de tiempo.
func (d *Document) IsActive() bool {
	return d.Status == DocumentActive
}
