package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtrack-backend/internal/model"
)

var testOffice = model.Office{
	Name:          "HQ",
	Latitude:      -6.2088,
	Longitude:     106.8456,
	RadiusMeters:  100,
	WorkStartTime: "09:30",
}

func init() {
	testOffice.ID = 1
}

func insideSample(at time.Time) Sample {
	return Sample{Latitude: testOffice.Latitude, Longitude: testOffice.Longitude, At: at}
}

func outsideSample(at time.Time) Sample {
	// ~1.1 km north of the office, well past the 100 m radius.
	return Sample{Latitude: testOffice.Latitude + 0.01, Longitude: testOffice.Longitude, At: at}
}

func freshDay() *model.Attendance {
	return &model.Attendance{UserID: "user-1", Date: "2026-09-01", OfficeID: testOffice.ID}
}

func TestFirstInsideSampleChecksIn(t *testing.T) {
	day := freshDay()
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)

	events := Evaluate(insideSample(at), testOffice, day)

	require.NotNil(t, day.CheckIn)
	assert.Equal(t, at, *day.CheckIn)
	assert.Nil(t, day.CheckOut)
	assert.True(t, day.WasInside)
	require.Len(t, events, 1)
	assert.Equal(t, EventEnter, events[0].Event)
	assert.Equal(t, at, events[0].OccurredAt)
	assert.Equal(t, "user-1", events[0].UserID)
}

func TestSecondInsideSampleIsQuiet(t *testing.T) {
	day := freshDay()
	first := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	Evaluate(insideSample(first), testOffice, day)

	events := Evaluate(insideSample(first.Add(5*time.Minute)), testOffice, day)

	assert.Empty(t, events)
	assert.Equal(t, first, *day.CheckIn) // never overwritten
	assert.Nil(t, day.CheckOut)
}

func TestFirstSampleOutsideSeedsStateWithoutEvent(t *testing.T) {
	day := freshDay()
	events := Evaluate(outsideSample(time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)), testOffice, day)

	assert.Empty(t, events) // was_inside already false
	assert.Nil(t, day.CheckIn)
	assert.Nil(t, day.CheckOut)
	assert.False(t, day.WasInside)
}

func TestInsideOutsideInsideSequence(t *testing.T) {
	day := freshDay()
	t0 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	t1 := t0.Add(2 * time.Hour)
	t2 := t0.Add(4 * time.Hour)

	var events []model.GeofenceEvent
	events = append(events, Evaluate(insideSample(t0), testOffice, day)...)
	events = append(events, Evaluate(outsideSample(t1), testOffice, day)...)
	events = append(events, Evaluate(insideSample(t2), testOffice, day)...)

	require.Len(t, events, 3)
	assert.Equal(t, EventEnter, events[0].Event)
	assert.Equal(t, EventExit, events[1].Event)
	assert.Equal(t, EventEnter, events[2].Event)

	// First in, first out: the re-entry neither clears nor moves check_out.
	require.NotNil(t, day.CheckIn)
	require.NotNil(t, day.CheckOut)
	assert.Equal(t, t0, *day.CheckIn)
	assert.Equal(t, t1, *day.CheckOut)
	assert.True(t, day.WasInside)
}

func TestSecondExitDoesNotReopenCheckOut(t *testing.T) {
	day := freshDay()
	t0 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)
	Evaluate(insideSample(t0), testOffice, day)
	Evaluate(outsideSample(t0.Add(time.Hour)), testOffice, day)
	Evaluate(insideSample(t0.Add(2*time.Hour)), testOffice, day)

	events := Evaluate(outsideSample(t0.Add(3*time.Hour)), testOffice, day)

	require.Len(t, events, 1)
	assert.Equal(t, EventExit, events[0].Event)
	assert.Equal(t, t0.Add(time.Hour), *day.CheckOut) // still the first exit
}

func TestSampleOnRadiusBoundaryCountsAsInside(t *testing.T) {
	day := freshDay()
	office := testOffice
	office.RadiusMeters = 112 // sample below is ~111 m away

	s := Sample{Latitude: office.Latitude + 0.001, Longitude: office.Longitude, At: time.Now()}
	events := Evaluate(s, office, day)

	require.Len(t, events, 1)
	assert.Equal(t, EventEnter, events[0].Event)
	assert.NotNil(t, day.CheckIn)
}
