package attendance

import (
	"time"

	"fieldtrack-backend/internal/model"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// ReportRow is one day of the monthly attendance report.
type ReportRow struct {
	Date        string     `json:"date"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	Status      string     `json:"status"`
	LateMinutes int        `json:"late_minutes"`
}

// Status derives the day's status and lateness from the check-in time and
// the office work start ("15:04" wall clock on the row's date).
func Status(day model.Attendance, office model.Office) (string, int) {
	if day.CheckIn == nil {
		return StatusAbsent, 0
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", day.Date+" "+office.WorkStartTime, time.Local)
	if err != nil {
		// Unparseable office config: report presence without lateness.
		return StatusPresent, 0
	}

	if day.CheckIn.After(start) {
		return StatusLate, int(day.CheckIn.Sub(start).Minutes())
	}
	return StatusPresent, 0
}

// BuildReport maps attendance rows (already month-scoped and date-ordered)
// to report rows.
func BuildReport(days []model.Attendance, office model.Office) []ReportRow {
	rows := make([]ReportRow, 0, len(days))
	for _, day := range days {
		status, lateMinutes := Status(day, office)
		rows = append(rows, ReportRow{
			Date:        day.Date,
			CheckIn:     day.CheckIn,
			CheckOut:    day.CheckOut,
			Status:      status,
			LateMinutes: lateMinutes,
		})
	}
	return rows
}
