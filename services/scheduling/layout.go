package scheduling

import (
	"sort"

	"meet_flow_app_go/models"
)

// BookingLayout assigns a booking its fractional column on the
// rendered day: WidthFraction of the day column wide, offset
// LeftOffsetFraction from its left edge.
type BookingLayout struct {
	Booking            models.Booking `json:"booking"`
	WidthFraction      float64        `json:"width_fraction"`
	LeftOffsetFraction float64        `json:"left_offset_fraction"`
}

// LayoutDay groups the bookings of one day into clusters of
// time-overlapping events and assigns each member a column so that
// none visually collide.
//
// Clustering uses a growing envelope: bookings are scanned in start
// order and a booking joins the current cluster when it starts before
// the cluster's running maximum end time. This can place a booking in
// a column among bookings it does not directly overlap, narrowing it
// more than a minimum coloring would. The approximation is stable
// and predictable, which matters more here than packing density.
func LayoutDay(bookings []models.Booking) []BookingLayout {
	layouts := make([]BookingLayout, 0, len(bookings))
	if len(bookings) == 0 {
		return layouts
	}

	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var clusters [][]models.Booking
	current := []models.Booking{sorted[0]}
	envelopeEnd := sorted[0].EndTime

	for _, booking := range sorted[1:] {
		if booking.StartTime.Before(envelopeEnd) {
			current = append(current, booking)
			if booking.EndTime.After(envelopeEnd) {
				envelopeEnd = booking.EndTime
			}
			continue
		}
		clusters = append(clusters, current)
		current = []models.Booking{booking}
		envelopeEnd = booking.EndTime
	}
	clusters = append(clusters, current)

	for _, cluster := range clusters {
		width := 1.0 / float64(len(cluster))
		for i, booking := range cluster {
			layouts = append(layouts, BookingLayout{
				Booking:            booking,
				WidthFraction:      width,
				LeftOffsetFraction: float64(i) * width,
			})
		}
	}

	return layouts
}
