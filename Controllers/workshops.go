package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"PreStart/Models"
	"PreStart/Storage"
)

// WorkshopController handles the workshop directory endpoints.
type WorkshopController struct {
	Store Storage.WorkshopStore
}

func NewWorkshopController(store Storage.WorkshopStore) *WorkshopController {
	return &WorkshopController{Store: store}
}

// GetWorkshops retrieves the directory.
func (wc *WorkshopController) GetWorkshops(c *fiber.Ctx) error {
	workshops, err := wc.Store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to load workshops, please try again"})
	}
	return c.JSON(workshops)
}

type workshopInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

// CreateWorkshop adds a workshop to the directory.
func (wc *WorkshopController) CreateWorkshop(c *fiber.Ctx) error {
	var input workshopInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	workshop := Models.Workshop{Name: input.Name, Email: input.Email}
	if _, err := wc.Store.Add(c.UserContext(), &workshop); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to add workshop, please try again"})
	}
	return c.Status(fiber.StatusCreated).JSON(workshop)
}

// UpdateWorkshop edits a workshop's name and email in place.
func (wc *WorkshopController) UpdateWorkshop(c *fiber.Ctx) error {
	var input workshopInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id := c.Params("id")
	if err := wc.Store.Update(c.UserContext(), id, input.Name, input.Email); err != nil {
		if errors.Is(err, Storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workshop not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to update workshop, please try again"})
	}
	return c.JSON(fiber.Map{"message": "Workshop updated"})
}

// DeleteWorkshop removes a workshop. The last remaining workshop cannot be
// deleted.
func (wc *WorkshopController) DeleteWorkshop(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := wc.Store.Delete(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, Storage.ErrLastItem):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete the last workshop. At least one workshop must remain."})
		case errors.Is(err, Storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workshop not found"})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to delete workshop, please try again"})
		}
	}
	return c.JSON(fiber.Map{"message": "Workshop deleted"})
}
