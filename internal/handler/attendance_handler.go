package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"fieldtrack-backend/internal/attendance"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

type AttendanceHandler struct {
	attendances repository.AttendanceRepository
	offices     repository.OfficeRepository
	users       repository.UserRepository
}

func NewAttendanceHandler(attendances repository.AttendanceRepository, offices repository.OfficeRepository, users repository.UserRepository) *AttendanceHandler {
	return &AttendanceHandler{attendances: attendances, offices: offices, users: users}
}

func (h *AttendanceHandler) MyAttendance(c *fiber.Ctx) error {
	days, err := h.attendances.History(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance"})
	}
	return c.JSON(fiber.Map{"message": "Attendance loaded", "data": days})
}

// parseMonth splits "YYYY-MM" into its parts.
func parseMonth(month string) (string, string, bool) {
	parts := strings.Split(month, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", "", false
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (h *AttendanceHandler) monthlyReport(c *fiber.Ctx, userID string) error {
	year, month, ok := parseMonth(c.Query("month"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month parameter must be YYYY-MM"})
	}

	days, err := h.attendances.GetByMonth(userID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance"})
	}

	office, err := h.offices.First()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No office configured"})
	}

	return c.JSON(fiber.Map{
		"message": "Report loaded",
		"data":    attendance.BuildReport(days, *office),
	})
}

func (h *AttendanceHandler) MyMonthly(c *fiber.Ctx) error {
	return h.monthlyReport(c, middleware.UserID(c))
}

func (h *AttendanceHandler) UserMonthly(c *fiber.Ctx) error {
	employeeID := c.Params("user_id")
	allowed, err := canViewEmployee(c, h.users, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify assignment"})
	}
	if !allowed {
		return notYourEmployee(c)
	}
	return h.monthlyReport(c, employeeID)
}

// Summary counts today's present/absent/late rows. Admins are scoped to
// their assigned employees. Rows only exist for users that sent at least
// one sample today, so "absent" here means "pinged but never entered".
func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")

	var days []model.Attendance
	var err error
	if middleware.RoleOf(c) == model.RoleAdmin {
		days, err = h.attendances.GetByDateForAdmin(today, middleware.UserID(c))
	} else {
		days, err = h.attendances.GetByDate(today)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load attendance"})
	}

	office, err := h.offices.First()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "No office configured"})
	}

	present, absent, late := 0, 0, 0
	for _, day := range days {
		status, _ := attendance.Status(day, *office)
		switch status {
		case attendance.StatusAbsent:
			absent++
		case attendance.StatusLate:
			present++
			late++
		default:
			present++
		}
	}

	return c.JSON(fiber.Map{
		"present": present,
		"absent":  absent,
		"late":    late,
	})
}
