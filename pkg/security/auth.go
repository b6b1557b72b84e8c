package security

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/achmadwirra/inventory-asset/internal/repository"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if err := godotenv.Load(); err == nil {
			secret = os.Getenv("JWT_SECRET")
		}
	}

	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtSecret = []byte(secret)
}

func AuthenticateUser(email, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "email", "password_hash", "role").
		From("users").
		Where(goqu.Ex{"email": email})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user not found: %s", email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID int, role string, email string) (string, error) {
	claims := jwt.MapClaims{
		"userID": strconv.Itoa(userID),
		"role":   role,
		"email":  email,
		"exp":    time.Now().Add(time.Hour * 8).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// CurrentUserID returns the acting user's id from the validated JWT
// claims, or nil when the request carries no authenticated actor (for
// example seeded or system-issued writes).
func CurrentUserID(c *gin.Context) *int {
	value, exists := c.Get("userID")
	if !exists {
		return nil
	}

	raw, ok := value.(string)
	if !ok {
		return nil
	}

	userID, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &userID
}
