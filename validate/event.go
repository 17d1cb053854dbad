package validate

import (
	"errors"
	"event_manager/constants"
	"event_manager/model"
	"event_manager/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		startDate, err := utils.ParseDateOnly(input.StartDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày bắt đầu không hợp lệ (YYYY-MM-DD)", err, "startDate")
		}
		endDate, err := utils.ParseDateOnly(input.EndDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày kết thúc không hợp lệ (YYYY-MM-DD)", err, "endDate")
		}
		if endDate.Before(startDate) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày kết thúc phải sau ngày bắt đầu", errors.New("endDate invalid"), "endDate")
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Save input to context locals
		c.Locals("inputCreateEvent", input)

		// Continue to next handler
		return c.Next()
	}
}

func EditEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params(key)
		if code == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("code invalid"))
		}

		var input model.EditEventInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if input.Status != nil && !utils.IsValidValueOfConstant(*input.Status, []string{constants.EVENT_DRAFT, constants.EVENT_PUBLISHED, constants.EVENT_CANCELLED}) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Trạng thái sự kiện không hợp lệ", errors.New("status invalid"), "status")
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputEditEvent", input)
		c.Locals("inputEventCode", code)
		return c.Next()
	}
}
