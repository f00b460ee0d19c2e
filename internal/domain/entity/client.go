package entity

import (
	"strings"
	"time"
)

// Client cliente del despacho (destinatario de las facturas).
type Client struct {
	ID          string
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Address     string
	City        string
	Country     string
	VATNumber   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Locality "Ciudad, País" sin separadores sobrantes.
func (c *Client) Locality() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{c.City, c.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
