package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/middleware"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/services"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/utils"
)

const maxPizzaImages = 5

// CreatePizza handles the multipart create form: scalar fields as form
// values, sizes/toppings as JSON text fields, images as file uploads.
func (h *Handler) CreatePizza(c *fiber.Ctx) error {
	name := c.FormValue("name")
	description := c.FormValue("description")
	flavour := c.FormValue("flavour")
	basePriceStr := c.FormValue("basePrice")
	if name == "" || description == "" || flavour == "" || basePriceStr == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "Name, description, flavour and base price are required.")
	}

	basePrice, err := strconv.ParseFloat(basePriceStr, 64)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "basePrice must be a number.")
	}

	in := services.CreatePizzaInput{
		Name:        name,
		Description: description,
		BasePrice:   basePrice,
		Flavour:     flavour,
	}

	if v := c.FormValue("isAvailable"); v != "" {
		isAvailable, err := strconv.ParseBool(v)
		if err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, "isAvailable must be a boolean.")
		}
		in.IsAvailable = &isAvailable
	}

	if v := c.FormValue("sizes"); v != "" {
		sizes, err := services.ParseSizes(v)
		if err != nil {
			return h.fail(c, err)
		}
		in.Sizes = sizes
	}
	if v := c.FormValue("toppings"); v != "" {
		toppings, err := services.ParseToppings(v)
		if err != nil {
			return h.fail(c, err)
		}
		in.Toppings = toppings
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid multipart form.")
	}
	in.Images, err = readImageFiles(form, "images", maxPizzaImages)
	if err != nil {
		return h.fail(c, err)
	}
	if len(in.Images) == 0 {
		return utils.JSONError(c, fiber.StatusBadRequest, "Please add images to your pizza.")
	}

	pizza, err := h.catalog.CreatePizza(c.Context(), middleware.UserID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, "Pizza created successfully.", fiber.Map{"pizza": pizza})
}

// UpdatePizza merges supplied form fields into an existing pizza; omitted
// fields are untouched.
func (h *Handler) UpdatePizza(c *fiber.Ctx) error {
	pizzaID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid pizza id.")
	}

	var in services.UpdatePizzaInput
	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := c.FormValue("flavour"); v != "" {
		in.Flavour = &v
	}
	if v := c.FormValue("basePrice"); v != "" {
		basePrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, "basePrice must be a number.")
		}
		in.BasePrice = &basePrice
	}
	if v := c.FormValue("isAvailable"); v != "" {
		isAvailable, err := strconv.ParseBool(v)
		if err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, "isAvailable must be a boolean.")
		}
		in.IsAvailable = &isAvailable
	}
	if v := c.FormValue("sizes"); v != "" {
		in.Sizes, err = services.ParseSizes(v)
		if err != nil {
			return h.fail(c, err)
		}
	}
	if v := c.FormValue("toppings"); v != "" {
		in.Toppings, err = services.ParseToppings(v)
		if err != nil {
			return h.fail(c, err)
		}
	}

	if form, ferr := c.MultipartForm(); ferr == nil {
		in.Images, err = readImageFiles(form, "images", maxPizzaImages)
		if err != nil {
			return h.fail(c, err)
		}
	}

	pizza, err := h.catalog.UpdatePizza(c.Context(), middleware.UserID(c), pizzaID, in)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Pizza updated successfully.", fiber.Map{
		"pizza":     pizza,
		"updatedAt": pizza.UpdatedAt.Format("3:04:05 PM"),
	})
}

func (h *Handler) FetchPizzas(c *fiber.Ctx) error {
	pizzas, err := h.catalog.ListPizzas(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	if pizzas == nil {
		pizzas = []models.Pizza{}
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Pizzas fetched.", fiber.Map{
		"pizzas": pizzas,
		"total":  len(pizzas),
	})
}

func (h *Handler) DeletePizza(c *fiber.Ctx) error {
	pizzaID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid pizza id.")
	}
	if err := h.catalog.DeletePizza(c.Context(), middleware.UserID(c), pizzaID); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Pizza deleted successfully.", nil)
}
