package billing

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceSuffix   = 9
)

// ReferenceGenerator genera referencias <PREFIJO>-<refDossier>-<año>-<9 caracteres A-Z0-9>.
// La unicidad la garantiza el índice único en DB; ante colisión el caso de uso reintenta.
type ReferenceGenerator struct {
	prefix string
	rand   io.Reader
}

// NewReferenceGenerator construye el generador con crypto/rand.
func NewReferenceGenerator(prefix string) *ReferenceGenerator {
	return &ReferenceGenerator{prefix: prefix, rand: rand.Reader}
}

// NewReferenceGeneratorWithSource permite fijar la fuente aleatoria (tests).
func NewReferenceGeneratorWithSource(prefix string, src io.Reader) *ReferenceGenerator {
	return &ReferenceGenerator{prefix: prefix, rand: src}
}

// Next genera una nueva referencia para el dossier.
func (g *ReferenceGenerator) Next(documentReference string, now time.Time) (string, error) {
	suffix, err := g.randomSuffix()
	if err != nil {
		return "", fmt.Errorf("generar referencia: %w", err)
	}
	return fmt.Sprintf("%s-%s-%d-%s", g.prefix, documentReference, now.Year(), suffix), nil
}

// randomSuffix muestreo por rechazo para no sesgar el alfabeto (252 = 36*7).
func (g *ReferenceGenerator) randomSuffix() (string, error) {
	out := make([]byte, 0, referenceSuffix)
	buf := make([]byte, 16)
	for len(out) < referenceSuffix {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 252 {
				continue
			}
			out = append(out, referenceAlphabet[int(b)%len(referenceAlphabet)])
			if len(out) == referenceSuffix {
				break
			}
		}
	}
	return string(out), nil
}
