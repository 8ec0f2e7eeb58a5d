package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"PreStart/Models"
	"PreStart/Storage"
)

// DriverController handles the driver roster endpoints.
type DriverController struct {
	Store Storage.DriverStore
}

func NewDriverController(store Storage.DriverStore) *DriverController {
	return &DriverController{Store: store}
}

// GetDrivers retrieves the roster.
func (dc *DriverController) GetDrivers(c *fiber.Ctx) error {
	drivers, err := dc.Store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to load drivers, please try again"})
	}
	return c.JSON(drivers)
}

type createDriverInput struct {
	Name string `json:"name" validate:"required,min=2"`
}

// CreateDriver adds a driver to the roster.
func (dc *DriverController) CreateDriver(c *fiber.Ctx) error {
	var input createDriverInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	driver := Models.Driver{Name: input.Name}
	if _, err := dc.Store.Add(c.UserContext(), &driver); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to add driver, please try again"})
	}
	return c.Status(fiber.StatusCreated).JSON(driver)
}

// DeleteDriver removes a driver. The last remaining driver cannot be deleted.
func (dc *DriverController) DeleteDriver(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := dc.Store.Delete(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, Storage.ErrLastItem):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete the last driver. At least one driver must remain."})
		case errors.Is(err, Storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Driver not found"})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Failed to delete driver, please try again"})
		}
	}
	return c.JSON(fiber.Map{"message": "Driver deleted"})
}
