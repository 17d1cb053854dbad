package router

import (
	"event_manager/constants"
	"event_manager/handler"
	"event_manager/middleware"
	"event_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterUser(), handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// Admin
	user := v1.Group("/user", logger.New())
	user.Get("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetUsers)
	user.Patch("/:userId/active/:isActive", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.GetById("userId"), handler.ActiveUser)

	event := v1.Group("/event", logger.New())
	event.Delete("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), validate.Delete(), handler.DeleteEvents)

	appointment := v1.Group("/appointment", logger.New())
	appointment.Get("/visitor", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetVisitorAppointments)

	promotion := v1.Group("/promotion", logger.New())
	promotion.Get("/", middleware.Protected(), handler.GetPromotions)
	promotion.Get("/summary", middleware.Protected(), handler.GetPromotionSummary)
	promotion.Post("/", middleware.Protected(), validate.CreatePromotion(), handler.CreatePromotion)
	promotion.Patch("/:promotionCode/status", middleware.Protected(), validate.UpdatePromotionStatus("promotionCode"), handler.UpdatePromotionStatus)
	promotion.Get("/:promotionCode", middleware.Protected(), validate.GetByCode("promotionCode"), handler.GetPromotionByCode)

	v1.Post("/cloudinary-signature", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_ORGANIZER, constants.ROLE_EXHIBITOR), handler.GenerateSignature)

	// Public

	// ROUTES
	taikhoan := v1.Group("/tai-khoan")
	taikhoan.Get("/me", middleware.Protected(), handler.Me)
	taikhoan.Put("/me", middleware.Protected(), validate.EditProfile(), handler.EditProfile)
	taikhoan.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	taikhoan.Post("/avatar", middleware.Protected(), validate.UploadAvatar(), handler.UploadAvatar)

	//người dùng
	nguoidung := v1.Group("/nguoi-dung")
	nguoidung.Get("/:userCode", middleware.OptionalJWT(), validate.GetByCode("userCode"), handler.GetUserByCode)
	nguoidung.Post("/:userCode/theo-doi", middleware.Protected(), validate.GetByCode("userCode"), handler.ToggleFollow)
	nguoidung.Post("/:userCode/yeu-thich", middleware.Protected(), validate.GetByCode("userCode"), handler.ToggleLike)
	nguoidung.Get("/:userCode/nguoi-theo-doi", middleware.OptionalJWT(), validate.GetByCode("userCode"), handler.GetFollowers)
	nguoidung.Get("/:userCode/dang-theo-doi", middleware.OptionalJWT(), validate.GetByCode("userCode"), handler.GetFollowing)
	nguoidung.Get("/:userCode/nguoi-yeu-thich", middleware.OptionalJWT(), validate.GetByCode("userCode"), handler.GetLikers)

	sukien := v1.Group("/su-kien")
	sukien.Get("/", middleware.OptionalJWT(), handler.GetEvents)
	sukien.Get("/cua-toi", middleware.Protected(), handler.GetMyEvents)
	sukien.Post("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN, constants.ROLE_ORGANIZER), validate.CreateEvent(), handler.CreateEvent)
	sukien.Put("/:eventCode", middleware.Protected(), validate.EditEvent("eventCode"), handler.EditEvent)
	sukien.Get("/:slug", middleware.OptionalJWT(), handler.GetEventBySlug)

	lichhen := v1.Group("/lich-hen")
	lichhen.Get("/", middleware.Protected(), handler.GetMyAppointments)
	lichhen.Post("/", middleware.Protected(), validate.RequestAppointment(), handler.RequestAppointment)
	lichhen.Put("/:appointmentCode", middleware.Protected(), validate.UpdateAppointment("appointmentCode"), handler.UpdateAppointment)
	lichhen.Get("/:appointmentCode", middleware.Protected(), validate.GetByCode("appointmentCode"), handler.GetAppointmentByCode)

	thongbao := v1.Group("/thong-bao")
	thongbao.Get("/", middleware.Protected(), handler.GetMyNotifications)
	thongbao.Patch("/:notificationId/read", middleware.Protected(), validate.GetById("notificationId"), handler.MarkNotificationRead)
	thongbao.Post("/read-all", middleware.Protected(), handler.MarkAllNotificationsRead)
	thongbao.Get("/ws/:userId", websocket.New(handler.NotificationWebsocket))

	// Đếm tương tác quảng bá, client nhúng banner gọi trực tiếp
	quangba := v1.Group("/quang-ba")
	quangba.Post("/:promotionCode/track", validate.TrackPromotionMetric("promotionCode"), handler.TrackPromotionMetric)
}
