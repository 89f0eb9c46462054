package handler

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"fieldtrack-backend/internal/mailer"
	"fieldtrack-backend/internal/middleware"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

type UserHandler struct {
	users  repository.UserRepository
	mailer *mailer.Mailer
}

func NewUserHandler(users repository.UserRepository, mailer *mailer.Mailer) *UserHandler {
	return &UserHandler{users: users, mailer: mailer}
}

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Name        string  `json:"name" validate:"required"`
	Password    string  `json:"password" validate:"required,min=8"`
	Role        string  `json:"role" validate:"required,oneof=SUPERADMIN ADMIN EMPLOYEE"`
	AdminID     *string `json:"admin_id"`
	DivisionID  *uint   `json:"division_id"`
	Designation string  `json:"designation"`
	JoiningDate string  `json:"joining_date"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := model.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}
	if err := h.users.Create(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not create user (email taken?)"})
	}

	// Employees get a profile so they can be assigned to an admin and a
	// division.
	if user.Role == model.RoleEmployee {
		profile := model.EmployeeProfile{
			UserID:      user.ID,
			AdminID:     req.AdminID,
			DivisionID:  req.DivisionID,
			Designation: req.Designation,
			JoiningDate: req.JoiningDate,
		}
		if err := h.users.CreateProfile(&profile); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "User created but profile failed"})
		}
	}

	go h.mailer.SendWelcome(user.Email, user.Name, req.Password)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"data":    user,
	})
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.users.GetAll(c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load users"})
	}
	return c.JSON(fiber.Map{"message": "Users loaded", "data": users})
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.users.FindByID(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User loaded", "data": user})
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.users.FindByID(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	// Roles are fixed at creation time.
	if req.Role != "" && req.Role != user.Role {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Role cannot be changed"})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.users.Update(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update user"})
	}
	return c.JSON(fiber.Map{"message": "User updated", "data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Params("user_id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete user"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *UserHandler) GetDivisions(c *fiber.Ctx) error {
	divisions, err := h.users.GetDivisions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load divisions"})
	}
	return c.JSON(fiber.Map{"message": "Divisions loaded", "data": divisions})
}

// GetDivisionEmployees lists a division's employees. Admins only see the
// employees assigned to them.
func (h *UserHandler) GetDivisionEmployees(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Employees loaded", "data": employees})
}
