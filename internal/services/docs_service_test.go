package services

import (
	"bytes"
	"context"
	"testing"

	"dreamhouse/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPDF_RendersDocument(t *testing.T) {
	repo := newFakeRepo()
	booking, err := BookingService{Repo: repo}.CreateBooking(context.Background(), validCreateInput())
	require.NoError(t, err)

	svc := DocsService{Repo: repo}
	data, filename, err := svc.BookingPDF(booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "booking_DH-1.pdf", filename)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}

func TestBookingPDF_UnknownBooking(t *testing.T) {
	svc := DocsService{Repo: newFakeRepo()}

	_, _, err := svc.BookingPDF(404)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
