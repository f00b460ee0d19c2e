package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhavocats/cabinet-api/internal/domain"
	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

func TestParseTaskStatus_TablaCompleta(t *testing.T) {
	cases := map[string]entity.TaskStatus{
		"todo":        entity.TaskPending,
		"PENDING":     entity.TaskPending,
		"in_progress": entity.TaskInProgress,
		"IN_PROGRESS": entity.TaskInProgress,
		"review":      entity.TaskInProgress,
		"completed":   entity.TaskDone,
		"DONE":        entity.TaskDone,
		"CANCELLED":   entity.TaskCancelled,
		"suspended":   entity.TaskSuspended,
		"  Todo  ":    entity.TaskPending,
	}
	for in, want := range cases {
		got, err := entity.ParseTaskStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseTaskStatus_Rechaza(t *testing.T) {
	for _, in := range []string{"", "archived", "in progress", "finished"} {
		_, err := entity.ParseTaskStatus(in)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in)
	}
}

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole("senior")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSenior, r)

	_, err = entity.ParseRole("intern")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestParseInvoiceStatus(t *testing.T) {
	st, err := entity.ParseInvoiceStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, st)

	_, err = entity.ParseInvoiceStatus("refunded")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUser_FullName(t *testing.T) {
	u := entity.User{FirstName: "Awa", LastName: "Ngono"}
	assert.Equal(t, "Awa Ngono", u.FullName())

	d := entity.TimeEntryDetail{CollaboratorFirstName: "Paul"}
	assert.Equal(t, "Paul", d.CollaboratorName())
}
