package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDateOptions(t *testing.T) {
	// A Monday.
	now := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	options := GenerateDateOptions(now)

	require.Len(t, options, maxDateOptions)
	for _, opt := range options {
		assert.NotEqual(t, time.Saturday, opt.Weekday())
		assert.NotEqual(t, time.Sunday, opt.Weekday())
		assert.True(t, opt.After(now))
	}

	// First option is the next day at the first slot.
	assert.Equal(t, time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC), options[0])
}

func TestGenerateDateOptionsSkipsWeekend(t *testing.T) {
	// A Friday: the next business day is Monday.
	now := time.Date(2026, time.January, 9, 12, 0, 0, 0, time.UTC)
	options := GenerateDateOptions(now)

	require.NotEmpty(t, options)
	assert.Equal(t, time.Monday, options[0].Weekday())
}

func TestGenerateDateOptionsDeterministic(t *testing.T) {
	now := time.Date(2026, time.March, 3, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, GenerateDateOptions(now), GenerateDateOptions(now))
}

func TestFormatDateOption(t *testing.T) {
	d := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Viernes 02 de Enero a las 09:00", FormatDateOption(d))

	d = time.Date(2026, time.February, 16, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "Lunes 16 de Febrero a las 16:00", FormatDateOption(d))
}

func TestMatchDateLabel(t *testing.T) {
	options := GenerateDateOptions(time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC))

	chosen, ok := matchDateLabel(FormatDateOption(options[2]), options)
	assert.True(t, ok)
	assert.Equal(t, options[2], chosen)

	_, ok = matchDateLabel("cualquier día", options)
	assert.False(t, ok)
}
