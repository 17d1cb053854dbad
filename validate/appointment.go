package validate

import (
	"errors"
	"event_manager/constants"
	"event_manager/model"
	"event_manager/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func RequestAppointment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RequestAppointmentInput

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if _, err := utils.ParseDateOnly(input.RequestedDate); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày hẹn không hợp lệ (YYYY-MM-DD)", err, "requestedDate")
		}
		if !utils.IsValidTimeOfDay(input.RequestedTime) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Giờ hẹn không hợp lệ (HH:MM)", errors.New("requestedTime invalid"), "requestedTime")
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Save input to context locals
		c.Locals("inputRequestAppointment", input)

		// Continue to next handler
		return c.Next()
	}
}

func UpdateAppointment(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params(key)
		if code == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("code invalid"))
		}

		var input model.UpdateAppointmentInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if input.ConfirmedDate != nil {
			if _, err := utils.ParseDateOnly(*input.ConfirmedDate); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày xác nhận không hợp lệ (YYYY-MM-DD)", err, "confirmedDate")
			}
		}
		if input.ConfirmedTime != nil && !utils.IsValidTimeOfDay(*input.ConfirmedTime) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Giờ xác nhận không hợp lệ (HH:MM)", errors.New("confirmedTime invalid"), "confirmedTime")
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputUpdateAppointment", input)
		c.Locals("inputAppointmentCode", code)
		return c.Next()
	}
}
