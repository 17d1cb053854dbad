package validate

import (
	"errors"
	"event_manager/constants"
	"event_manager/model"
	"event_manager/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func CreatePromotion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if input.Amount <= 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Số tiền phải lớn hơn 0", errors.New("amount invalid"), "amount")
		}
		if input.DurationDays <= 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Thời hạn (ngày) phải lớn hơn 0", errors.New("durationDays invalid"), "durationDays")
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Save input to context locals
		c.Locals("inputCreatePromotion", input)

		// Continue to next handler
		return c.Next()
	}
}

func UpdatePromotionStatus(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params(key)
		if code == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("code invalid"))
		}

		var input model.UpdatePromotionStatusInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// REJECTED bắt buộc kèm lý do
		if input.Status == constants.PROMOTION_REJECTED && (input.RejectionReason == nil || *input.RejectionReason == "") {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Từ chối gói quảng bá phải kèm lý do", errors.New("rejectionReason required"), "rejectionReason")
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputUpdatePromotionStatus", input)
		c.Locals("inputPromotionCode", code)
		return c.Next()
	}
}

func TrackPromotionMetric(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params(key)
		if code == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("code invalid"))
		}

		var input model.PromotionMetricInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputPromotionMetric", input)
		c.Locals("inputPromotionCode", code)
		return c.Next()
	}
}
