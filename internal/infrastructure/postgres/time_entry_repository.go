package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
	"github.com/dhavocats/cabinet-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo implementación de TimeEntryRepository (usable con pool o tx).
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

// detailSelect proyección común: entrada + colaborador + lista + dossier.
const detailSelect = `
		SELECT te.id, te.task_id, te.collaborator_id, te.hours_spent, te.description, te.date,
		       te.invoice_id, te.invoiced, te.created_at, te.updated_at,
		       u.first_name, u.last_name, u.hourly_rate,
		       l.name, l.document_id
		FROM time_entries te
		JOIN tasks t ON t.id = te.task_id
		JOIN lists l ON l.id = t.list_id
		JOIN users u ON u.id = te.collaborator_id`

// Create persiste una entrada de tiempo sin factura.
func (r *TimeEntryRepo) Create(ctx context.Context, e *entity.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, task_id, collaborator_id, hours_spent, description, date, invoice_id, invoiced, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, false, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.TaskID, e.CollaboratorID, e.HoursSpent, nullIfEmpty(e.Description), e.Date,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("tarea o colaborador")
		}
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada con su colaborador y dossier; nil, nil si no existe.
func (r *TimeEntryRepo) GetByID(ctx context.Context, id string) (*entity.TimeEntryDetail, error) {
	rows, err := r.q.Query(ctx, detailSelect+`
		WHERE te.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	list, err := scanDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Update corrige horas, descripción y fecha.
func (r *TimeEntryRepo) Update(ctx context.Context, e *entity.TimeEntry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE time_entries
		SET hours_spent = $2, description = $3, date = $4, updated_at = $5
		WHERE id = $1`,
		e.ID, e.HoursSpent, nullIfEmpty(e.Description), e.Date, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("entrada de tiempo")
	}
	return nil
}

// Delete elimina una entrada de tiempo.
func (r *TimeEntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("entrada de tiempo")
	}
	return nil
}

// ListByTask entradas de una tarea por fecha.
func (r *TimeEntryRepo) ListByTask(ctx context.Context, taskID string) ([]*entity.TimeEntryDetail, error) {
	rows, err := r.q.Query(ctx, detailSelect+`
		WHERE te.task_id = $1
		ORDER BY te.date, te.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list time entries by task: %w", err)
	}
	return scanDetails(rows)
}

// ListByInvoice entradas enlazadas a una factura, en el orden de las líneas del PDF.
func (r *TimeEntryRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.TimeEntryDetail, error) {
	rows, err := r.q.Query(ctx, detailSelect+`
		WHERE te.invoice_id = $1
		ORDER BY te.date, te.id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list time entries by invoice: %w", err)
	}
	return scanDetails(rows)
}

// ListForBilling selecciona y bloquea las entradas a facturar de un dossier.
// Con IDs explícitos solo se filtra por pertenencia al dossier: las ya facturadas
// se detectan después, en LinkToInvoice.
func (r *TimeEntryRepo) ListForBilling(ctx context.Context, f repository.BillingFilter) ([]*entity.TimeEntryDetail, error) {
	where := []string{"l.document_id = $1"}
	args := []any{f.DocumentID}

	if len(f.IDs) > 0 {
		args = append(args, f.IDs)
		where = append(where, fmt.Sprintf("te.id = ANY($%d::uuid[])", len(args)))
	} else {
		if f.OnlyUninvoiced {
			where = append(where, "te.invoice_id IS NULL")
		}
		if f.StartDate != nil {
			args = append(args, *f.StartDate)
			where = append(where, fmt.Sprintf("te.date >= $%d", len(args)))
		}
	}

	query := detailSelect + `
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY te.date, te.id
		FOR UPDATE OF te`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select billable entries: %w", err)
	}
	return scanDetails(rows)
}

// LinkToInvoice enlaza solo las entradas libres; el llamador compara el conteo con la selección.
func (r *TimeEntryRepo) LinkToInvoice(ctx context.Context, invoiceID string, entryIDs []string) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE time_entries
		SET invoice_id = $1, invoiced = true, updated_at = now()
		WHERE id = ANY($2::uuid[]) AND invoice_id IS NULL`,
		invoiceID, entryIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("link time entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlinkInvoice libera todas las entradas de la factura.
func (r *TimeEntryRepo) UnlinkInvoice(ctx context.Context, invoiceID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE time_entries
		SET invoice_id = NULL, invoiced = false, updated_at = now()
		WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("unlink time entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanDetails(rows pgx.Rows) ([]*entity.TimeEntryDetail, error) {
	defer rows.Close()
	list := make([]*entity.TimeEntryDetail, 0)
	for rows.Next() {
		var (
			d         entity.TimeEntryDetail
			desc      *string
			invoiceID *string
		)
		if err := rows.Scan(
			&d.ID, &d.TaskID, &d.CollaboratorID, &d.HoursSpent, &desc, &d.Date,
			&invoiceID, &d.Invoiced, &d.CreatedAt, &d.UpdatedAt,
			&d.CollaboratorFirstName, &d.CollaboratorLastName, &d.HourlyRate,
			&d.ListName, &d.DocumentID,
		); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		d.Description = derefStr(desc)
		d.InvoiceID = invoiceID
		list = append(list, &d)
	}
	return list, rows.Err()
}
