package entity

import (
	"strings"
	"time"

	"github.com/dhavocats/cabinet-api/internal/domain"
)

// ListStatus estado de una lista (fase) de un dossier.
type ListStatus string

const (
	ListOpen   ListStatus = "OPEN"
	ListClosed ListStatus = "CLOSED"
)

// ParseListStatus valida el estado de lista recibido.
func ParseListStatus(s string) (ListStatus, error) {
	switch st := ListStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ListOpen, ListClosed:
		return st, nil
	}
	return "", domain.ErrInvalidStatus
}

// List fase o checklist dentro de un dossier.
type List struct {
	ID         string
	DocumentID string
	Name       string
	Status     ListStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
