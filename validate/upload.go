package validate

import (
	"event_manager/helper"
	"event_manager/utils"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

func UploadAvatar() fiber.Handler {
	return func(c *fiber.Ctx) error {
		avatarFile, err := c.FormFile("avatar")
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "File avatar không được cung cấp", fmt.Errorf("missing avatar file"), "avatar")
		}

		// Chỉ nhận JPG, PNG, JPEG
		ext := filepath.Ext(avatarFile.Filename)
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Định dạng avatar không hỗ trợ (chỉ JPG, PNG, JPEG)", fmt.Errorf("invalid avatar format"), "avatar")
		}

		// Tối đa 5MB
		if avatarFile.Size > 5*1024*1024 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "File avatar quá lớn (tối đa 5MB)", fmt.Errorf("avatar too large"), "avatar")
		}

		cld, err := helper.NewCloudinary()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể khởi tạo Cloudinary: %s", err.Error()),
			})
		}
		c.Locals("cld", cld)
		return c.Next()
	}
}
