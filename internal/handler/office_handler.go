package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

type OfficeHandler struct {
	offices repository.OfficeRepository
}

func NewOfficeHandler(offices repository.OfficeRepository) *OfficeHandler {
	return &OfficeHandler{offices: offices}
}

type OfficeRequest struct {
	Name          string   `json:"name" validate:"required"`
	Latitude      *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	RadiusMeters  float64  `json:"radius_meters" validate:"gte=0"`
	WorkStartTime string   `json:"work_start_time"`
	WorkEndTime   string   `json:"work_end_time"`
}

func (h *OfficeHandler) GetAll(c *fiber.Ctx) error {
	offices, err := h.offices.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load offices"})
	}
	return c.JSON(fiber.Map{"message": "Offices loaded", "data": offices})
}

func (h *OfficeHandler) Create(c *fiber.Ctx) error {
	var req OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	office := model.Office{
		Name:          req.Name,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		RadiusMeters:  req.RadiusMeters,
		WorkStartTime: req.WorkStartTime,
		WorkEndTime:   req.WorkEndTime,
	}
	if office.RadiusMeters == 0 {
		office.RadiusMeters = 100
	}
	if office.WorkStartTime == "" {
		office.WorkStartTime = "09:30"
	}
	if office.WorkEndTime == "" {
		office.WorkEndTime = "18:00"
	}

	if err := h.offices.Create(&office); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create office"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Office created", "data": office})
}

func (h *OfficeHandler) Update(c *fiber.Ctx) error {
	officeID, err := strconv.Atoi(c.Params("office_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid office id"})
	}

	office, err := h.offices.FindByID(uint(officeID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Office not found"})
	}

	var req OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	office.Name = req.Name
	office.Latitude = *req.Latitude
	office.Longitude = *req.Longitude
	if req.RadiusMeters > 0 {
		office.RadiusMeters = req.RadiusMeters
	}
	if req.WorkStartTime != "" {
		office.WorkStartTime = req.WorkStartTime
	}
	if req.WorkEndTime != "" {
		office.WorkEndTime = req.WorkEndTime
	}

	if err := h.offices.Update(office); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update office"})
	}
	return c.JSON(fiber.Map{"message": "Office updated", "data": office})
}
