package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":    StatusPending,
		"pendente":   StatusPending,
		"":           StatusPending,
		"confirmed":  StatusConfirmed,
		"confirmado": StatusConfirmed,
		"CONFIRMADO": StatusConfirmed,
		"completed":  StatusCompleted,
		"concluido":  StatusCompleted,
		"concluído":  StatusCompleted,
		"cancelled":  StatusCancelled,
		"canceled":   StatusCancelled,
		"cancelado":  StatusCancelled,
		" pending ":  StatusPending,
		"qualquer":   StatusPending,
	}

	for raw, want := range cases {
		assert.Equal(t, want, NormalizeStatus(raw), "entrada %q", raw)
	}
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))

	err := CanCancel(StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	err = CanCancel(StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCanConfirm(t *testing.T) {
	assert.NoError(t, CanConfirm(StatusPending))
	assert.Error(t, CanConfirm(StatusConfirmed))
	assert.Error(t, CanConfirm(StatusCancelled))
}

func TestCanComplete(t *testing.T) {
	assert.NoError(t, CanComplete(StatusPending))
	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.Error(t, CanComplete(StatusCompleted))
}
