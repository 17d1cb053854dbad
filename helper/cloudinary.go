package helper

import (
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinary khởi tạo client upload media (avatar, ảnh sự kiện, banner gian hàng)
func NewCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}
