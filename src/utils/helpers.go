package utils

import (
	"anc/src/config"
	"anc/src/db"
	"anc/src/models"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   fmt.Sprint(userId),
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// OrganizationInfo returns the receipt letterhead block, from Settings when
// an admin has customized it, otherwise the built-in defaults.
func OrganizationInfo() map[string]any {
	info := map[string]any{
		"name":         config.ORG_NAME,
		"address":      config.ORG_ADDRESS,
		"email":        config.ORG_EMAIL,
		"phone":        config.ORG_PHONE,
		"registration": config.ORG_REGISTRATION,
	}
	d := db.GetDb()
	var setting models.Setting
	err := d.
		Model(&models.Setting{}).
		Where(&models.Setting{SettingKey: "organization", Group: "receipts"}).
		First(&setting).
		Error
	if err != nil {
		return info
	}
	if stored, ok := setting.SettingValue.Inner.(map[string]any); ok {
		for k, v := range stored {
			info[k] = v
		}
	}
	return info
}
