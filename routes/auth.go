package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"kampung-service-server/config"
	"kampung-service-server/models"
	"kampung-service-server/types"
)

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/login", login)
}

// login issues a JWT for one of the seeded demo identities. There are no
// passwords; picking an identity and a role is the whole sign-in flow.
func login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	var profile interface{}
	switch req.Role {
	case models.RoleResident:
		user, ok := userDir.Get(req.UserID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Unknown resident",
				"message": "No resident exists with that id",
			})
			return
		}
		profile = user
	case models.RoleWorker:
		worker, ok := workerDir.Get(req.UserID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Unknown worker",
				"message": "No worker exists with that id",
			})
			return
		}
		profile = worker
	}

	token, err := generateToken(req.UserID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Could not sign the session token",
		})
		return
	}

	log.Printf("🔐 %s %s logged in", req.Role, req.UserID)
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"role":    req.Role,
		"profile": profile,
	})
}

func generateToken(userID, role string) (string, error) {
	expiry := time.Duration(config.AppConfig.JWT.ExpiryHours) * time.Hour
	claims := &types.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWT.Secret))
}
