package billing

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/access"
	domainbilling "github.com/dhavocats/cabinet-api/internal/domain/billing"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

// ─── Almacén en memoria ──────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex // serializa transacciones como haría el bloqueo de filas
	invoices  map[string]entity.Invoice
	entries   map[string]entity.TimeEntryDetail
	docs      map[string]entity.Document
	clients   map[string]entity.Client
	users     map[string]entity.User
	audits    []entity.AuditLog
	auditErr  error
	takenNext int // próximos Create de factura que fallan con ErrReferenceTaken
}

func newMemStore() *memStore {
	return &memStore{
		invoices: map[string]entity.Invoice{},
		entries:  map[string]entity.TimeEntryDetail{},
		docs:     map[string]entity.Document{},
		clients:  map[string]entity.Client{},
		users:    map[string]entity.User{},
	}
}

func (s *memStore) snapshot() (map[string]entity.Invoice, map[string]entity.TimeEntryDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := make(map[string]entity.Invoice, len(s.invoices))
	for k, v := range s.invoices {
		inv[k] = v
	}
	ent := make(map[string]entity.TimeEntryDetail, len(s.entries))
	for k, v := range s.entries {
		if v.InvoiceID != nil {
			id := *v.InvoiceID
			v.InvoiceID = &id
		}
		ent[k] = v
	}
	return inv, ent
}

func (s *memStore) restore(inv map[string]entity.Invoice, ent map[string]entity.TimeEntryDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = inv
	s.entries = ent
}

func (s *memStore) entry(id string) entity.TimeEntryDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

func (s *memStore) invoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// ─── Fake TxRunner: rollback = restaurar snapshot ────────────────────────────

type fakeTxRunner struct {
	s     *memStore
	calls int
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository, repository.TimeEntryRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.calls++
	inv, ent := r.s.snapshot()
	if err := fn(&memInvoiceRepo{s: r.s}, &memEntryRepo{s: r.s}); err != nil {
		r.s.restore(inv, ent)
		return err
	}
	return nil
}

// ─── Repos ───────────────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.takenNext > 0 {
		r.s.takenNext--
		return domain.ErrReferenceTaken
	}
	for _, other := range r.s.invoices {
		if other.Reference == inv.Reference {
			return domain.ErrReferenceTaken
		}
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.NotFound("factura")
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return domain.NotFound("factura")
	}
	delete(r.s.invoices, id)
	return nil
}

func (r *memInvoiceRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.DocumentID == documentID {
			inv := inv
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

type memEntryRepo struct{ s *memStore }

func (r *memEntryRepo) GetByID(_ context.Context, id string) (*entity.TimeEntryDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memEntryRepo) Update(_ context.Context, e *entity.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.entries[e.ID]
	if !ok {
		return domain.NotFound("entrada de tiempo")
	}
	d.HoursSpent, d.Description, d.Date, d.UpdatedAt = e.HoursSpent, e.Description, e.Date, e.UpdatedAt
	r.s.entries[e.ID] = d
	return nil
}

func (r *memEntryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entries[id]; !ok {
		return domain.NotFound("entrada de tiempo")
	}
	delete(r.s.entries, id)
	return nil
}

func (r *memEntryRepo) Create(_ context.Context, e *entity.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.entries[e.ID] = entity.TimeEntryDetail{TimeEntry: *e}
	return nil
}

func (r *memEntryRepo) ListByTask(_ context.Context, taskID string) ([]*entity.TimeEntryDetail, error) {
	return r.list(func(e entity.TimeEntryDetail) bool { return e.TaskID == taskID }), nil
}

func (r *memEntryRepo) ListForBilling(_ context.Context, f repository.BillingFilter) ([]*entity.TimeEntryDetail, error) {
	explicit := map[string]bool{}
	for _, id := range f.IDs {
		explicit[id] = true
	}
	return r.list(func(e entity.TimeEntryDetail) bool {
		if e.DocumentID != f.DocumentID {
			return false
		}
		if len(f.IDs) > 0 {
			return explicit[e.ID]
		}
		if f.OnlyUninvoiced && e.InvoiceID != nil {
			return false
		}
		if f.StartDate != nil && e.Date.Before(*f.StartDate) {
			return false
		}
		return true
	}), nil
}

func (r *memEntryRepo) LinkToInvoice(_ context.Context, invoiceID string, ids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		e, ok := r.s.entries[id]
		if !ok || e.InvoiceID != nil {
			continue
		}
		inv := invoiceID
		e.InvoiceID = &inv
		e.Invoiced = true
		r.s.entries[id] = e
		n++
	}
	return n, nil
}

func (r *memEntryRepo) UnlinkInvoice(_ context.Context, invoiceID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, e := range r.s.entries {
		if e.InvoiceID != nil && *e.InvoiceID == invoiceID {
			e.InvoiceID = nil
			e.Invoiced = false
			r.s.entries[id] = e
			n++
		}
	}
	return n, nil
}

func (r *memEntryRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.TimeEntryDetail, error) {
	return r.list(func(e entity.TimeEntryDetail) bool { return e.InvoiceID != nil && *e.InvoiceID == invoiceID }), nil
}

func (r *memEntryRepo) list(keep func(entity.TimeEntryDetail) bool) []*entity.TimeEntryDetail {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TimeEntryDetail
	for _, e := range r.s.entries {
		if keep(e) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type memDocumentRepo struct{ s *memStore }

func (r *memDocumentRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.docs[d.ID] = *d
	return nil
}

func (r *memDocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memDocumentRepo) Update(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.docs[d.ID] = *d
	return nil
}

func (r *memDocumentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	return nil
}

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memClientRepo) List(context.Context, int, int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *memClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clients, id)
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateBillingProfile(_ context.Context, id string, role entity.Role, rate *decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.NotFound("usuario")
	}
	u.Role, u.HourlyRate = role, rate
	r.s.users[id] = u
	return nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.auditErr != nil {
		return r.s.auditErr
	}
	r.s.audits = append(r.s.audits, *l)
	return nil
}

// ─── Fixture ─────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	s       *memStore
	tx      *fakeTxRunner
	uc      *InvoiceUseCase
	pdf     *PDFUseCase
	gen     *fakePDFGenerator
	doc     entity.Document
	client  entity.Client
	partner access.Actor
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{s: s, tx: &fakeTxRunner{s: s}, gen: &fakePDFGenerator{}}
	f.client = entity.Client{ID: uuid.NewString(), Name: "Jean Mbarga", CompanyName: "Sodeco SA"}
	s.clients[f.client.ID] = f.client
	f.partner = access.Actor{ID: uuid.NewString(), Role: entity.RoleAssociate}
	s.users[f.partner.ID] = entity.User{ID: f.partner.ID, FirstName: "Marie", LastName: "Essomba", Role: entity.RoleAssociate}
	f.doc = entity.Document{
		ID:           uuid.NewString(),
		Reference:    "DOS-2025-014",
		Title:        "Litige commercial Sodeco",
		ClientID:     f.client.ID,
		CreatorID:    f.partner.ID,
		DepartmentID: uuid.NewString(),
		Status:       entity.DocumentActive,
	}
	s.docs[f.doc.ID] = f.doc

	settings := Settings{
		DefaultTaxRate:       decimal.RequireFromString("19.25"),
		DueDays:              30,
		Currency:             "FCFA",
		ReferencePrefix:      "FACT",
		MaxReferenceAttempts: 3,
	}
	f.uc = NewInvoiceUseCase(f.tx, &memInvoiceRepo{s: s}, &memEntryRepo{s: s}, &memDocumentRepo{s: s},
		&memClientRepo{s: s}, &memUserRepo{s: s}, &memAuditRepo{s: s}, settings)
	f.uc.now = func() time.Time { return testNow }
	f.uc.refs = domainbilling.NewReferenceGenerator("FACT")
	f.pdf = NewPDFUseCase(&memInvoiceRepo{s: s}, &memDocumentRepo{s: s}, &memClientRepo{s: s}, &memEntryRepo{s: s}, f.gen)
	return f
}

// addEntry agrega una entrada no facturada al dossier del fixture. rate "" = colaborador sin tarifa.
func (f *fixture) addEntry(documentID, hours, rate string, day int) string {
	id := uuid.NewString()
	var r *decimal.Decimal
	if rate != "" {
		d := decimal.RequireFromString(rate)
		r = &d
	}
	f.s.entries[id] = entity.TimeEntryDetail{
		TimeEntry: entity.TimeEntry{
			ID:             id,
			TaskID:         uuid.NewString(),
			CollaboratorID: uuid.NewString(),
			HoursSpent:     decimal.RequireFromString(hours),
			Description:    "Rédaction des conclusions",
			Date:           time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC),
		},
		CollaboratorFirstName: "Paul",
		CollaboratorLastName:  "Nkodo",
		HourlyRate:            r,
		ListName:              "Procédure",
		DocumentID:            documentID,
	}
	return id
}

// ─── Fake PDF ────────────────────────────────────────────────────────────────

type fakePDFGenerator struct {
	last InvoicePDFData
	err  error
}

func (g *fakePDFGenerator) GenerateInvoicePDF(_ context.Context, data InvoicePDFData) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.last = data
	return []byte("%PDF-1.3 " + data.Invoice.Reference), nil
}

var errBoom = errors.New("boom")
