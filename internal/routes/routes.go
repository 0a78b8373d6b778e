package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/handlers"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/middleware"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
)

func Setup(app *fiber.App, h *handlers.Handler, tokens *token.Manager) {
	auth := middleware.RequireAuth(tokens)

	users := app.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/refresh", h.Refresh)
	users.Post("/logout", h.Logout)
	users.Get("/user-dashboard", auth, h.Dashboard)
	users.Post("/create-admin", auth, h.CreateAdmin)
	users.Get("/host-dashboard", auth, h.HostDashboard)
	users.Post("/send-verification-otp/:id", h.SendVerificationOtp)
	users.Post("/verify-account/:id", h.VerifyAccount)
	users.Post("/send-reset-otp", h.SendResetOtp)
	users.Post("/validate-reset-otp/:id", h.ValidateResetOtp)
	users.Post("/reset-password/:id", h.ResetPassword)
	users.Post("/upload-profile-picture", auth, h.UploadProfilePicture)

	products := app.Group("/products")
	products.Get("/fetch-pizzas", h.FetchPizzas)
	products.Post("/create-pizza", auth, h.CreatePizza)
	products.Post("/update-pizza/:id", auth, h.UpdatePizza)
	products.Delete("/delete-pizza/:id", auth, h.DeletePizza)

	cart := app.Group("/cart", auth)
	cart.Get("/", h.GetCart)
	cart.Post("/items", h.AddCartItem)
	cart.Patch("/items", h.UpdateCartItem)
	cart.Delete("/items/:pizzaId", h.RemoveCartItem)
}
