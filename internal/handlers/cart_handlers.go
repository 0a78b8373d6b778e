package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/middleware"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/utils"
)

func (h *Handler) GetCart(c *fiber.Ctx) error {
	cart, err := h.cart.GetCart(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Cart fetched.", fiber.Map{"cart": cart})
}

type cartItemReq struct {
	PizzaID  string `json:"pizzaId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

func (h *Handler) AddCartItem(c *fiber.Ctx) error {
	var req cartItemReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}
	pizzaID, err := parseObjectID(req.PizzaID)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid pizza id.")
	}

	cart, err := h.cart.AddItem(c.Context(), middleware.UserID(c), pizzaID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Item added to cart.", fiber.Map{"cart": cart})
}

func (h *Handler) UpdateCartItem(c *fiber.Ctx) error {
	var req cartItemReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}
	pizzaID, err := parseObjectID(req.PizzaID)
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid pizza id.")
	}

	cart, err := h.cart.UpdateItem(c.Context(), middleware.UserID(c), pizzaID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Cart item updated.", fiber.Map{"cart": cart})
}

func (h *Handler) RemoveCartItem(c *fiber.Ctx) error {
	pizzaID, err := parseObjectID(c.Params("pizzaId"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid pizza id.")
	}

	cart, err := h.cart.RemoveItem(c.Context(), middleware.UserID(c), pizzaID)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Item removed from cart.", fiber.Map{"cart": cart})
}
