package app

import (
	"context"

	"hotel_gateway/internal/domain"
)

type BookingService struct {
	up domain.Upstream
}

func NewBookingService(up domain.Upstream) *BookingService {
	return &BookingService{up: up}
}

// History lists the signed-in customer's bookings, newest first as the
// backend returns them. Bookings are passed through mostly opaque;
// only the status and payment codes are typed so the history screen
// can label them.
func (s *BookingService) History(ctx context.Context) ([]domain.Booking, error) {
	payload, err := s.up.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	ms := asMaps(payload.Data)
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, mapBooking(m))
	}
	return out, nil
}
