package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fieldtrack-backend/internal/model"
)

func dayWithCheckIn(date string, checkIn *time.Time) model.Attendance {
	return model.Attendance{UserID: "user-1", Date: date, CheckIn: checkIn}
}

func TestStatusAbsentWithoutCheckIn(t *testing.T) {
	status, late := Status(dayWithCheckIn("2026-09-01", nil), testOffice)
	assert.Equal(t, StatusAbsent, status)
	assert.Equal(t, 0, late)
}

func TestStatusLateOneMinute(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 31, 0, 0, time.Local)
	status, late := Status(dayWithCheckIn("2026-09-01", &checkIn), testOffice)
	assert.Equal(t, StatusLate, status)
	assert.Equal(t, 1, late)
}

func TestStatusPresentBeforeWorkStart(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 29, 0, 0, time.Local)
	status, late := Status(dayWithCheckIn("2026-09-01", &checkIn), testOffice)
	assert.Equal(t, StatusPresent, status)
	assert.Equal(t, 0, late)
}

func TestStatusPresentExactlyAtWorkStart(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 30, 0, 0, time.Local)
	status, late := Status(dayWithCheckIn("2026-09-01", &checkIn), testOffice)
	assert.Equal(t, StatusPresent, status)
	assert.Equal(t, 0, late)
}

func TestBuildReportKeepsOrderAndTimes(t *testing.T) {
	in1 := time.Date(2026, 9, 1, 9, 45, 0, 0, time.Local)
	out1 := time.Date(2026, 9, 1, 18, 5, 0, 0, time.Local)
	days := []model.Attendance{
		{UserID: "user-1", Date: "2026-09-01", CheckIn: &in1, CheckOut: &out1},
		{UserID: "user-1", Date: "2026-09-02"},
	}

	rows := BuildReport(days, testOffice)

	assert.Len(t, rows, 2)
	assert.Equal(t, "2026-09-01", rows[0].Date)
	assert.Equal(t, StatusLate, rows[0].Status)
	assert.Equal(t, 15, rows[0].LateMinutes)
	assert.Equal(t, &out1, rows[0].CheckOut)
	assert.Equal(t, StatusAbsent, rows[1].Status)
}
