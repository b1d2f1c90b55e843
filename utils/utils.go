package utils

import (
	"errors"
	"fmt"

	"meetly/database"
	"meetly/models/user"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// IdentityIDFromContext extracts the identity-provider subject id the auth
// middleware stored in the request context.
func IdentityIDFromContext(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("user claims missing from context")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("subject not found in token")
	}
	return sub, nil
}

// GetUserByIdentityID retrieves a host by their identity-provider subject id.
func GetUserByIdentityID(identityID string) (*user.User, error) {
	if identityID == "" {
		return nil, errors.New("identity id cannot be empty")
	}

	var userModel user.User
	if err := database.DB.Where("identity_id = ?", identityID).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}
