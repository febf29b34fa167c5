package router

import (
	"space_manager/handler"
	"space_manager/middleware"
	"space_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	users := api.Group("/users", logger.New())
	users.Post("/save", middleware.OptionalJWT(), validate.CreateUser(), handler.CreateUser)
	users.Get("/", middleware.Protected(), validate.AdminOnly(), handler.GetUsers)
	users.Get("/me", middleware.Protected(), handler.GetMe)
	users.Get("/check-email", handler.CheckEmailExists)
	users.Put("/:userId", middleware.Protected(), validate.UpdateUser("userId"), handler.UpdateUser)
	users.Delete("/:userId", middleware.Protected(), validate.AdminOnly(), validate.GetById("userId"), handler.DeleteUser)

	spaces := api.Group("/spaces", logger.New())
	spaces.Get("/", handler.GetSpaces)
	spaces.Get("/slug/:slug", handler.GetSpaceBySlug)
	spaces.Get("/:spaceId", validate.GetById("spaceId"), handler.GetSpaceById)
	spaces.Post("/save", middleware.Protected(), validate.CreateSpace(), handler.CreateSpace)
	spaces.Put("/:spaceId", middleware.Protected(), validate.UpdateSpace("spaceId"), handler.UpdateSpace)
	spaces.Delete("/:spaceId", middleware.Protected(), validate.DeleteSpace("spaceId"), handler.DeleteSpace)

	bookings := api.Group("/bookings", logger.New())
	bookings.Post("/", middleware.Protected(), validate.CreateBooking(), handler.CreateBooking)
	bookings.Put("/:bookingId/cancel", middleware.Protected(), validate.CancelBooking("bookingId"), handler.CancelBooking)
	bookings.Get("/user/:userId", middleware.Protected(), validate.GetById("userId"), handler.GetBookingsByUser)
	bookings.Get("/space/:spaceId/date/:date", validate.BookingsForSpaceOnDate(), handler.GetBookingsForSpaceOnDate)
	bookings.Post("/check-availability", validate.CheckAvailability(), handler.CheckAvailability)
	bookings.Put("/updateAdmin/:bookingId", middleware.Protected(), validate.AdminUpdateBooking("bookingId"), handler.UpdateBookingByAdmin)
	bookings.Post("/update-completed", middleware.Protected(), validate.AdminOnly(), handler.UpdateCompletedBookings)
	bookings.Get("/detailed", middleware.Protected(), validate.AdminOnly(), handler.GetBookingsDetailed)
	bookings.Delete("/delete/:bookingId", middleware.Protected(), validate.AdminOnly(), validate.GetById("bookingId"), handler.DeleteBooking)
	bookings.Get("/space/:spaceId/live", middleware.OptionalJWT(), websocket.New(handler.BookingSocket))
}
