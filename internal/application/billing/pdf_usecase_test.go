package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

func generated(t *testing.T, f *fixture) string {
	t.Helper()
	f.addEntry(f.doc.ID, "2", "10000", 1)
	f.addEntry(f.doc.ID, "3", "20000", 2)
	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)
	return out.Invoice.ID
}

func TestRenderInvoicePDF_CargaTodoYNombraElArchivo(t *testing.T) {
	f := newFixture()
	id := generated(t, f)

	pdf, filename, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	inv := f.s.invoices[id]
	assert.Equal(t, "facture-"+inv.Reference+".pdf", filename)
	assert.Equal(t, f.client.ID, f.gen.last.Client.ID)
	assert.Equal(t, f.doc.ID, f.gen.last.Document.ID)
	assert.Len(t, f.gen.last.Entries, 2)
}

func TestRenderInvoicePDF_ClienteDelDossierComoRespaldo(t *testing.T) {
	f := newFixture()
	id := generated(t, f)
	inv := f.s.invoices[id]
	inv.ClientID = uuid.NewString()
	f.s.invoices[id] = inv

	_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
	require.NoError(t, err)
	assert.Equal(t, f.client.ID, f.gen.last.Client.ID)
}

func TestRenderInvoicePDF_FallaRapidoSinDatos(t *testing.T) {
	t.Run("factura inexistente", func(t *testing.T) {
		f := newFixture()
		_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("sin cliente", func(t *testing.T) {
		f := newFixture()
		id := generated(t, f)
		delete(f.s.clients, f.client.ID)
		_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("colaborador sin tarifa", func(t *testing.T) {
		f := newFixture()
		id := generated(t, f)
		for k, e := range f.s.entries {
			e.HourlyRate = nil
			f.s.entries[k] = e
		}
		_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("colaborador sin nombre", func(t *testing.T) {
		f := newFixture()
		id := generated(t, f)
		for k, e := range f.s.entries {
			e.CollaboratorFirstName, e.CollaboratorLastName = "", ""
			f.s.entries[k] = e
		}
		_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRenderInvoicePDF_RequiereVerElDossier(t *testing.T) {
	f := newFixture()
	id := generated(t, f)

	outsider := access.Actor{ID: uuid.NewString(), Role: entity.RoleSenior, DepartmentID: uuid.NewString()}
	_, _, err := f.pdf.RenderInvoicePDF(ctx, outsider, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	junior := access.Actor{ID: uuid.NewString(), Role: entity.RoleJunior, DepartmentID: f.doc.DepartmentID}
	_, _, err = f.pdf.RenderInvoicePDF(ctx, junior, id)
	assert.NoError(t, err)
}

func TestRenderInvoicePDF_ErrorDelGenerador(t *testing.T) {
	f := newFixture()
	id := generated(t, f)
	f.gen.err = errBoom

	_, _, err := f.pdf.RenderInvoicePDF(ctx, f.partner, id)
	assert.ErrorIs(t, err, errBoom)
}
