package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/utils"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature ký params để client upload thẳng lên Cloudinary.
// Chỉ user đang đăng nhập và còn active mới được ký.
func GenerateSignature(c *fiber.Ctx) error {
	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse nhưng không ký
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Params không hợp lệ", err)
	}

	timestamp := time.Now().Unix()

	// Chỉ ký các param cloudinary yêu cầu (không ký resource_type, api_key)
	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = fmt.Sprintf("%d", timestamp)

	// Sort key theo alphabet rồi nối key=value bằng &, giá trị raw không escape
	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadAvatar upload avatar qua server (multipart) rồi lưu URL vào hồ sơ
func UploadAvatar(c *fiber.Ctx) error {
	db := database.DB

	claim, currentUser := helper.GetInfoUserFromToken(c)
	if currentUser == nil || claim.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu file avatar", err)
	}

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy Cloudinary client", nil)
	}

	avatarReader, err := avatarFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đọc file avatar", err)
	}
	defer avatarReader.Close()

	uploadResult, err := cld.Upload.Upload(context.Background(), avatarReader, uploader.UploadParams{
		Folder:       "users/avatars",
		PublicID:     fmt.Sprintf("user_%d_avatar_%d", claim.UserId, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tải avatar lên Cloudinary", err)
	}

	if err := db.Model(currentUser).Update("avatar_url", uploadResult.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"avatarUrl": uploadResult.SecureURL})
}
