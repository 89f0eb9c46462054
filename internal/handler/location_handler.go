package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
	"fieldtrack-backend/internal/usecase"
)

type LocationHandler struct {
	ingest    *usecase.LocationUsecase
	locations repository.LocationRepository
	users     repository.UserRepository
}

func NewLocationHandler(ingest *usecase.LocationUsecase, locations repository.LocationRepository, users repository.UserRepository) *LocationHandler {
	return &LocationHandler{ingest: ingest, locations: locations, users: users}
}

type SendLocationRequest struct {
	// Pointers so a missing field is distinguishable from latitude 0.
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Millis    *int64   `json:"millis"` // client clock, epoch milliseconds
}

// Send ingests one GPS ping from the authenticated employee.
func (h *LocationHandler) Send(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req SendLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.ingest.Ingest(userID, *req.Latitude, *req.Longitude, req.Millis); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("location ingest failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not process location"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Location received"})
}

type locationEntry struct {
	ID         uint       `json:"id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Millis     *int64     `json:"millis"`
	RecordedAt *time.Time `json:"recorded_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toEntries(logs []model.LocationLog) []locationEntry {
	entries := make([]locationEntry, 0, len(logs))
	for _, l := range logs {
		entry := locationEntry{
			ID:         l.ID,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
			RecordedAt: l.RecordedAt,
			CreatedAt:  l.CreatedAt,
		}
		if l.RecordedAt != nil {
			millis := l.RecordedAt.UnixMilli()
			entry.Millis = &millis
		}
		entries = append(entries, entry)
	}
	return entries
}

func (h *LocationHandler) MyHistory(c *fiber.Ctx) error {
	logs, err := h.locations.HistoryByUser(middleware.UserID(c), nil, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load history"})
	}
	return c.JSON(fiber.Map{"message": "History loaded", "data": toEntries(logs)})
}

// canViewEmployee enforces the admin scoping rule: an ADMIN may only look
// at employees whose profile names them. SUPERADMIN passes through.
func canViewEmployee(c *fiber.Ctx, users repository.UserRepository, employeeID string) (bool, error) {
	if middleware.RoleOf(c) != model.RoleAdmin {
		return true, nil
	}
	return users.IsAssignedTo(employeeID, middleware.UserID(c))
}

func notYourEmployee(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This employee is not assigned to you"})
}

func (h *LocationHandler) UserHistory(c *fiber.Ctx) error {
	employeeID := c.Params("user_id")
	allowed, err := canViewEmployee(c, h.users, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify assignment"})
	}
	if !allowed {
		return notYourEmployee(c)
	}

	var start, end *time.Time
	if s := c.Query("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			start = &t
		}
	}
	if e := c.Query("end"); e != "" {
		if t, err := time.Parse(time.RFC3339, e); err == nil {
			end = &t
		}
	}

	logs, err := h.locations.HistoryByUser(employeeID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load history"})
	}
	return c.JSON(fiber.Map{"message": "History loaded", "data": toEntries(logs)})
}

// Latest returns the newest ping for the map marker. No ping yet is an
// empty object, not an error.
func (h *LocationHandler) Latest(c *fiber.Ctx) error {
	employeeID := c.Params("user_id")
	allowed, err := canViewEmployee(c, h.users, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify assignment"})
	}
	if !allowed {
		return notYourEmployee(c)
	}

	loc, err := h.locations.Latest(employeeID)
	if err != nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(fiber.Map{
		"lat":  loc.Latitude,
		"lng":  loc.Longitude,
		"time": loc.RecordedAt,
	})
}

// Route returns the user's pings oldest first for polyline rendering.
func (h *LocationHandler) Route(c *fiber.Ctx) error {
	employeeID := c.Params("user_id")
	allowed, err := canViewEmployee(c, h.users, employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify assignment"})
	}
	if !allowed {
		return notYourEmployee(c)
	}

	logs, err := h.locations.Route(employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load route"})
	}

	points := make([]fiber.Map, 0, len(logs))
	for _, l := range logs {
		points = append(points, fiber.Map{"lat": l.Latitude, "lng": l.Longitude})
	}
	return c.JSON(points)
}

// DivisionLive returns the latest known position of every employee in a
// division, for the live map. Admins only see their own employees.
func (h *LocationHandler) DivisionLive(c *fiber.Ctx) error {
	divisionID, err := c.ParamsInt("division_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid division id"})
	}

	adminScope := ""
	if middleware.RoleOf(c) == model.RoleAdmin {
		adminScope = middleware.UserID(c)
	}

	employees, err := h.users.GetDivisionEmployees(uint(divisionID), adminScope)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load employees"})
	}

	data := make([]fiber.Map, 0, len(employees))
	for _, emp := range employees {
		loc, err := h.locations.Latest(emp.ID)
		if err != nil {
			continue // no ping yet
		}
		data = append(data, fiber.Map{
			"user_id": emp.ID,
			"name":    emp.Name,
			"lat":     loc.Latitude,
			"lng":     loc.Longitude,
			"time":    loc.RecordedAt,
		})
	}
	return c.JSON(data)
}
