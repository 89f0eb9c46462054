package attendance

import (
	"time"

	"fieldtrack-backend/internal/geo"
	"fieldtrack-backend/internal/model"
)

const (
	EventEnter = "ENTER"
	EventExit  = "EXIT"
)

// Sample is one location ping as seen by the evaluator.
type Sample struct {
	Latitude  float64
	Longitude float64
	At        time.Time
}

// Evaluate applies a location sample to the attendance row for that day and
// returns the geofence events to append. The row is mutated in place; the
// caller owns persistence and must serialize calls per (user, date).
//
// Rules:
//   - check_in is set by the first sample inside the geofence and never
//     overwritten.
//   - check_out is set by the first sample outside the geofence after a
//     check-in; later re-entries and re-exits do not touch it.
//   - an ENTER/EXIT event is emitted whenever the sample's side of the
//     fence differs from the row's persisted was_inside.
//   - was_inside is re-seeded from every sample, including the first of
//     the day.
func Evaluate(sample Sample, office model.Office, day *model.Attendance) []model.GeofenceEvent {
	distance := geo.Distance(sample.Latitude, sample.Longitude, office.Latitude, office.Longitude)
	inside := distance <= office.RadiusMeters

	if inside && day.CheckIn == nil {
		t := sample.At
		day.CheckIn = &t
	}

	if !inside && day.CheckIn != nil && day.CheckOut == nil {
		t := sample.At
		day.CheckOut = &t
	}

	var events []model.GeofenceEvent
	if inside != day.WasInside {
		event := EventExit
		if inside {
			event = EventEnter
		}
		events = append(events, model.GeofenceEvent{
			UserID:     day.UserID,
			OfficeID:   office.ID,
			Event:      event,
			OccurredAt: sample.At,
		})
	}

	day.WasInside = inside
	return events
}
