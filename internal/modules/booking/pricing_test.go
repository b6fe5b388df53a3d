package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
)

func TestQuoteDailyRoundsUpPartialNights(t *testing.T) {
	room := &domain.Room{PricePerNight: 1000}
	in := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC)

	s, err := Quote(room, domain.BookingDaily, &in, &out, nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 2, s.Duration)
	assert.InDelta(t, 2000.0, s.Price, 0.001)
}

func TestQuoteRejectsInvertedDates(t *testing.T) {
	room := &domain.Room{PricePerNight: 1000}
	in := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := Quote(room, domain.BookingDaily, &in, &out, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDates)

	_, err = Quote(room, domain.BookingMonthly, &in, &out, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestQuoteMonthlyKeepsExplicitCheckout(t *testing.T) {
	room := &domain.Room{PricePerMonth: 30000}
	in := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	s, err := Quote(room, domain.BookingMonthly, &in, &out, nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, out, s.CheckOut)
	assert.Equal(t, 29, s.Duration)
	assert.InDelta(t, 30000.0, s.Price, 0.001)
}

func TestQuoteRejectsNegativePrice(t *testing.T) {
	price := -1.0
	_, err := Quote(&domain.Room{}, domain.BookingMonthly, nil, nil, &price, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestParseDateLayouts(t *testing.T) {
	d, err := parseDate("checkin", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	d, err = parseDate("checkin", "2024-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	d, err = parseDate("checkin", " ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("checkin", "01/02/2024")
	assert.Error(t, err)
}
