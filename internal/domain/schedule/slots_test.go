package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

func TestSplitIntoSlots_FullDay(t *testing.T) {
	slots, err := SplitIntoSlots("09:00", "18:00", 60)
	require.NoError(t, err)
	require.Len(t, slots, 9)

	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[0].End)
	assert.Equal(t, "17:00", slots[8].Start)
	assert.Equal(t, "18:00", slots[8].End)
}

func TestSplitIntoSlots_RemainderDropped(t *testing.T) {
	// 75 minutos de expediente só comportam uma janela de 60
	slots, err := SplitIntoSlots("09:00", "10:15", 60)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[0].End)
}

func TestSplitIntoSlots_ExactFit(t *testing.T) {
	slots, err := SplitIntoSlots("08:00", "08:30", 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestSplitIntoSlots_EmptyRange(t *testing.T) {
	slots, err := SplitIntoSlots("09:00", "09:00", 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSplitIntoSlots_InvertedRange(t *testing.T) {
	_, err := SplitIntoSlots("18:00", "09:00", 60)
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}

func TestSplitIntoSlots_InvalidDuration(t *testing.T) {
	_, err := SplitIntoSlots("09:00", "18:00", 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))

	_, err = SplitIntoSlots("09:00", "18:00", -30)
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
}

func TestSplitIntoSlots_InvalidClock(t *testing.T) {
	_, err := SplitIntoSlots("9h00", "18:00", 60)
	assert.Error(t, err)
}
