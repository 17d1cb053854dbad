package helper

import (
	"errors"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/model"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByUsername(u string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{UserName: u}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func CheckByEmailUser(email string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	query := db.Model(&model.User{}).Where("email = ?", email)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func CheckByUserName(userName string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	query := db.Model(&model.User{}).Where("user_name = ?", userName)
	if id != nil {
		query = query.Where("id != ?", *id)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Xác thực thuật toán ký là HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoUserFromToken đọc claim từ token trong Locals và load user tương ứng.
// Trả về claim rỗng (UserId = 0) nếu chưa đăng nhập.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, *model.User) {
	guestClaim := model.TokenClaim{}

	u := c.Locals("user")
	if u == nil {
		return guestClaim, nil
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		return guestClaim, nil
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return guestClaim, nil
	}

	userIdFloat, _ := claims["userId"].(float64)
	if userIdFloat == 0 {
		return guestClaim, nil
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	tokenClaim := model.TokenClaim{
		UserId:   uint(userIdFloat),
		Username: username,
		Role:     role,
	}

	var user model.User
	db := database.DB
	if err := db.First(&user, tokenClaim.UserId).Error; err != nil {
		log.Printf("User not found (id=%d): %v", tokenClaim.UserId, err)
		return guestClaim, nil
	}

	// Role lấy từ DB là nguồn chuẩn, token có thể cũ
	tokenClaim.Role = user.Role

	return tokenClaim, &user
}

func IsAdmin(claim model.TokenClaim) bool {
	return claim.Role == constants.ROLE_ADMIN
}
