package model

import "testing"

func TestParseBookingStatus(t *testing.T) {
	cases := []struct {
		in   string
		want BookingStatus
	}{
		{"BOOKED", BookingBooked},
		{"CANCELLED", BookingCancelled},
		{"COMPLETED", BookingCompleted},
		{"cancelled", BookingCancelled},
		{"  completed  ", BookingCompleted},
		{"", BookingBooked},
		{"PENDING", BookingBooked},
		{"nonsense", BookingBooked},
	}

	for _, tc := range cases {
		if got := ParseBookingStatus(tc.in); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
