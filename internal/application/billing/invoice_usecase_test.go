package billing

import (
	"context"
	"math"
	"math/rand"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhavocats/cabinet-api/internal/application/dto"
	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

var ctx = context.Background()

func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ─── Generate ────────────────────────────────────────────────────────────────

// Dossier con 2h @ 10000 y 3h @ 20000, tasa por defecto 19.25% -> 80000 / 15400 / 95400.
func TestGenerate_EscenarioReferencia(t *testing.T) {
	f := newFixture()
	e1 := f.addEntry(f.doc.ID, "2", "10000", 1)
	e2 := f.addEntry(f.doc.ID, "3", "20000", 2)

	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	assert.Equal(t, "5", out.Summary.TotalHours.String())
	assert.Equal(t, "80000", out.Summary.Subtotal.String())
	assert.Equal(t, "15400", out.Summary.TaxAmount.String())
	assert.Equal(t, "95400", out.Summary.Total.String())
	assert.Equal(t, "95400", out.Invoice.Amount.String())
	assert.Equal(t, "19.25", out.Invoice.TaxRate.String())
	assert.Equal(t, string(entity.InvoiceDraft), out.Invoice.Status)
	assert.False(t, out.Invoice.Paid)
	assert.Equal(t, testNow.Format(time.RFC3339), out.Invoice.IssueDate)
	assert.Equal(t, testNow.AddDate(0, 0, 30).Format(time.RFC3339), out.Invoice.DueDate)
	assert.Equal(t, f.client.ID, out.Invoice.ClientID)
	assert.Equal(t, f.partner.ID, out.Invoice.IssuedByID)
	assert.Regexp(t, regexp.MustCompile(`^FACT-DOS-2025-014-2025-[A-Z0-9]{9}$`), out.Invoice.Reference)

	require.Len(t, out.Details, 2)
	assert.Equal(t, "20000", out.Details[0].LineAmount.String())
	assert.Equal(t, "60000", out.Details[1].LineAmount.String())
	assert.Equal(t, "Paul Nkodo", out.Details[0].CollaboratorName)
	assert.Equal(t, "Procédure", out.Details[0].TaskGroupName)

	for _, id := range []string{e1, e2} {
		e := f.s.entry(id)
		require.NotNil(t, e.InvoiceID)
		assert.Equal(t, out.Invoice.ID, *e.InvoiceID)
		assert.True(t, e.Invoiced)
	}
	require.Len(t, f.s.audits, 1)
	assert.Equal(t, entity.AuditInvoiceGenerated, f.s.audits[0].Action)
	assert.Contains(t, f.s.audits[0].Message, "95 400 FCFA")
}

func TestGenerate_SeleccionVaciaNoCreaFactura(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	assert.ErrorIs(t, err, domain.ErrNoBillableEntries)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.s.invoiceCount())
}

func TestGenerate_EntradasFacturadasQuedanExcluidas(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "5000", 1)

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, OnlyUninvoiced: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrNoBillableEntries)
	assert.Equal(t, 1, f.s.invoiceCount())
}

// onlyUninvoiced=false vuelve a seleccionar entradas ya facturadas; el guard del enlace lo detecta.
func TestGenerate_SinFiltroDeFacturadasEsConflicto(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "5000", 1)
	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, OnlyUninvoiced: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrEntriesAlreadyInvoiced)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, f.s.invoiceCount())
}

func TestGenerate_SinTarifaEsErrorYRollback(t *testing.T) {
	f := newFixture()
	ok := f.addEntry(f.doc.ID, "2", "10000", 1)
	f.addEntry(f.doc.ID, "1", "", 2)

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	assert.ErrorIs(t, err, domain.ErrMissingHourlyRate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.s.invoiceCount())
	assert.Nil(t, f.s.entry(ok).InvoiceID)
}

func TestGenerate_IDsExplicitosSeIntersectanConElDossier(t *testing.T) {
	f := newFixture()
	mine := f.addEntry(f.doc.ID, "2", "10000", 1)
	f.addEntry(f.doc.ID, "4", "10000", 2)
	foreign := f.addEntry(uuid.NewString(), "3", "10000", 3)

	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{
		DocumentID:   f.doc.ID,
		TimeEntryIDs: []string{mine, foreign},
	})
	require.NoError(t, err)
	require.Len(t, out.Details, 1)
	assert.Equal(t, mine, out.Details[0].TimeEntryID)
	assert.Nil(t, f.s.entry(foreign).InvoiceID)
}

func TestGenerate_IDExplicitoYaFacturadoEsConflicto(t *testing.T) {
	f := newFixture()
	e := f.addEntry(f.doc.ID, "2", "10000", 1)
	first, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, TimeEntryIDs: []string{e}})
	assert.ErrorIs(t, err, domain.ErrEntriesAlreadyInvoiced)
	assert.Equal(t, 1, f.s.invoiceCount())
	assert.Equal(t, first.Invoice.ID, *f.s.entry(e).InvoiceID)
}

func TestGenerate_FiltroStartDate(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "2", "10000", 1)
	late := f.addEntry(f.doc.ID, "1", "10000", 20)

	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, StartDate: "2025-04-15"})
	require.NoError(t, err)
	require.Len(t, out.Details, 1)
	assert.Equal(t, late, out.Details[0].TimeEntryID)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, StartDate: "hier"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestGenerate_TasaYVencimientoPersonalizados(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "10", "10000", 1)

	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{
		DocumentID:    f.doc.ID,
		CustomTaxRate: decPtr("18"),
		DueDate:       "2025-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "18000", out.Summary.TaxAmount.String())
	assert.Equal(t, "118000", out.Invoice.Amount.String())
	assert.Equal(t, "2025-07-01T00:00:00Z", out.Invoice.DueDate)
}

func TestGenerate_EntradaInvalidaFallaAntesDeEscribir(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "10000", 1)

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, DueDate: "31/12/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidDueDate)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, CustomTaxRate: decPtr("120")})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)

	// NUMERIC(5,2): una tercera cifra decimal cambiaría el monto al releer la factura.
	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, CustomTaxRate: decPtr("19.254")})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)

	_, err = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: "no-es-uuid"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, 0, f.s.invoiceCount())
}

func TestGenerate_DossierInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerate_AccesoSegunPolitica(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "10000", 1)

	junior := access.Actor{ID: uuid.NewString(), Role: entity.RoleJunior, DepartmentID: f.doc.DepartmentID}
	_, err := f.uc.Generate(ctx, junior, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, f.tx.calls)

	senior := access.Actor{ID: uuid.NewString(), Role: entity.RoleSenior, DepartmentID: f.doc.DepartmentID}
	_, err = f.uc.Generate(ctx, senior, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	assert.NoError(t, err)
}

func TestGenerate_ReintentaAnteReferenciaTomada(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "10000", 1)
	f.s.takenNext = 2

	out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, f.tx.calls)
	assert.Equal(t, 1, f.s.invoiceCount())
	assert.NotEmpty(t, out.Invoice.Reference)
}

func TestGenerate_ReferenciaTomadaAgotaIntentos(t *testing.T) {
	f := newFixture()
	e := f.addEntry(f.doc.ID, "1", "10000", 1)
	f.s.takenNext = 3

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	assert.ErrorIs(t, err, domain.ErrReferenceTaken)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 0, f.s.invoiceCount())
	assert.Nil(t, f.s.entry(e).InvoiceID)
}

func TestGenerate_FalloDeHistorialNoRevierte(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "1", "10000", 1)
	f.s.auditErr = errBoom

	_, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, f.s.invoiceCount())
}

// Para cualquier conjunto no vacío: monto = round(Σ horas×tarifa × (1+tasa/100)) ± 1 unidad.
func TestGenerate_MontoDentroDeUnaUnidad(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rates := []string{"0", "5.5", "18", "19.25", "20"}
	for i := 0; i < 50; i++ {
		f := newFixture()
		want := 0.0
		for n := 1 + rng.Intn(6); n > 0; n-- {
			quarters := 1 + rng.Intn(40)
			rate := 1000 + rng.Intn(90000)
			hours := decimal.NewFromInt(int64(quarters)).Div(decimal.NewFromInt(4))
			f.addEntry(f.doc.ID, hours.String(), decimal.NewFromInt(int64(rate)).String(), 1+rng.Intn(28))
			want += float64(quarters) / 4 * float64(rate)
		}
		taxRate := rates[rng.Intn(len(rates))]
		tr, _ := decimal.RequireFromString(taxRate).Float64()
		want = math.Round(want * (1 + tr/100))

		out, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID, CustomTaxRate: decPtr(taxRate)})
		require.NoError(t, err)
		got, _ := out.Invoice.Amount.Float64()
		assert.InDelta(t, want, got, 1, "iteración %d", i)
		assert.True(t, out.Invoice.Amount.Equal(out.Invoice.Amount.Round(0)))
	}
}

// Dos generaciones concurrentes sobre las mismas entradas: una factura, la otra no encuentra nada.
func TestGenerate_ConcurrenteNoFacturaDosVeces(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "2", "10000", 1)
	f.addEntry(f.doc.ID, "3", "20000", 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrNoBillableEntries)
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, f.s.invoiceCount())
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_ManualConValoresPorDefecto(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Amount: decPtr("150000.4")})
	require.NoError(t, err)
	assert.Equal(t, "150000", out.Amount.String())
	assert.Equal(t, "19.25", out.TaxRate.String())
	assert.Equal(t, f.client.ID, out.ClientID)
	assert.Equal(t, f.partner.ID, out.IssuedByID)
	assert.Equal(t, testNow.AddDate(0, 0, 30).Format(time.RFC3339), out.DueDate)
	assert.Regexp(t, regexp.MustCompile(`^FACT-DOS-2025-014-2025-[A-Z0-9]{9}$`), out.Reference)
	assert.Empty(t, out.TimeEntries)
}

func TestCreate_ReferenciaExplicitaDuplicada(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Reference: "FACT-MANUELLE-1"})
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Reference: "FACT-MANUELLE-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, f.s.invoiceCount())
}

func TestCreate_EmisorOClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, IssuedByID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, ClientID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Amount: decPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── MarkAsPaid / Update / Get ───────────────────────────────────────────────

func TestMarkAsPaid_SinFechaUsaAhora(t *testing.T) {
	f := newFixture()
	inv, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Amount: decPtr("1000")})
	require.NoError(t, err)
	require.Equal(t, string(entity.InvoiceDraft), inv.Status)

	out, err := f.uc.MarkAsPaid(ctx, f.partner, inv.ID, dto.MarkPaidRequest{})
	require.NoError(t, err)
	assert.True(t, out.Paid)
	assert.Equal(t, string(entity.InvoicePaid), out.Status)
	assert.Equal(t, testNow.Format(time.RFC3339), out.PaymentDate)

	stored := f.s.invoices[inv.ID]
	require.NotNil(t, stored.PaymentDate)
	assert.WithinDuration(t, testNow, *stored.PaymentDate, time.Second)
}

func TestMarkAsPaid_ConFecha(t *testing.T) {
	f := newFixture()
	inv, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	out, err := f.uc.MarkAsPaid(ctx, f.partner, inv.ID, dto.MarkPaidRequest{PaymentDate: "2025-05-02"})
	require.NoError(t, err)
	assert.Equal(t, "2025-05-02T00:00:00Z", out.PaymentDate)

	_, err = f.uc.MarkAsPaid(ctx, f.partner, inv.ID, dto.MarkPaidRequest{PaymentDate: "mañana"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.uc.MarkAsPaid(ctx, f.partner, uuid.NewString(), dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_EstadoValidado(t *testing.T) {
	f := newFixture()
	inv, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	bad := "refunded"
	_, err = f.uc.Update(ctx, f.partner, inv.ID, dto.UpdateInvoiceRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	sent, notes := "sent", "Relance envoyée"
	out, err := f.uc.Update(ctx, f.partner, inv.ID, dto.UpdateInvoiceRequest{Status: &sent, Notes: &notes, Amount: decPtr("5000")})
	require.NoError(t, err)
	assert.Equal(t, "SENT", out.Status)
	assert.Equal(t, "Relance envoyée", out.Notes)
	assert.Equal(t, "5000", out.Amount.String())
	assert.False(t, out.Paid)

	_, err = f.uc.Update(ctx, f.partner, inv.ID, dto.UpdateInvoiceRequest{TaxRate: decPtr("19.254")})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
	_, err = f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, TaxRate: decPtr("19.254")})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxRate)
}

func TestGet_IncluyeEntradasYRespetaAcceso(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "2", "10000", 1)
	gen, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	out, err := f.uc.Get(ctx, f.partner, gen.Invoice.ID)
	require.NoError(t, err)
	require.Len(t, out.TimeEntries, 1)
	assert.Equal(t, "20000", out.TimeEntries[0].LineAmount.String())

	outsider := access.Actor{ID: uuid.NewString(), Role: entity.RoleMid, DepartmentID: uuid.NewString()}
	_, err = f.uc.Get(ctx, outsider, gen.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListByDocument_SoloFacturasDelDossier(t *testing.T) {
	f := newFixture()
	f.addEntry(f.doc.ID, "2", "10000", 1)
	gen, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)
	manual, err := f.uc.Create(ctx, f.partner, dto.CreateInvoiceRequest{DocumentID: f.doc.ID, Amount: decPtr("5000")})
	require.NoError(t, err)

	list, err := f.uc.ListByDocument(ctx, f.partner, f.doc.ID)
	require.NoError(t, err)
	ids := []string{}
	for _, inv := range list {
		ids = append(ids, inv.ID)
		assert.Empty(t, inv.TimeEntries)
	}
	assert.ElementsMatch(t, []string{gen.Invoice.ID, manual.ID}, ids)

	outsider := access.Actor{ID: uuid.NewString(), Role: entity.RoleMid, DepartmentID: uuid.NewString()}
	_, err = f.uc.ListByDocument(ctx, outsider, f.doc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.ListByDocument(ctx, f.partner, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Remove ──────────────────────────────────────────────────────────────────

func TestRemove_DesenlazaTodasLasEntradas(t *testing.T) {
	f := newFixture()
	e1 := f.addEntry(f.doc.ID, "2", "10000", 1)
	e2 := f.addEntry(f.doc.ID, "3", "20000", 2)
	gen, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	require.NoError(t, f.uc.Remove(ctx, f.partner, gen.Invoice.ID))

	assert.Equal(t, 0, f.s.invoiceCount())
	for _, id := range []string{e1, e2} {
		e := f.s.entry(id)
		assert.Nil(t, e.InvoiceID)
		assert.False(t, e.Invoiced)
	}

	// Las entradas liberadas se pueden volver a facturar.
	again, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)
	assert.Equal(t, "95400", again.Invoice.Amount.String())

	err = f.uc.Remove(ctx, f.partner, gen.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove_SinPermisoNoTocaNada(t *testing.T) {
	f := newFixture()
	e := f.addEntry(f.doc.ID, "2", "10000", 1)
	gen, err := f.uc.Generate(ctx, f.partner, dto.GenerateInvoiceRequest{DocumentID: f.doc.ID})
	require.NoError(t, err)

	junior := access.Actor{ID: uuid.NewString(), Role: entity.RoleJunior, DepartmentID: f.doc.DepartmentID}
	err = f.uc.Remove(ctx, junior, gen.Invoice.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 1, f.s.invoiceCount())
	assert.NotNil(t, f.s.entry(e).InvoiceID)
}
