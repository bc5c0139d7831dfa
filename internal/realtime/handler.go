package realtime

import (
	"fmt"
	"net/http"
	"strings"

	"guestlink/internal/shared/config"
	"guestlink/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const sessionPropertyKey = "property_id"

// SetupRealtimeRoutes registers the dashboard websocket endpoint. The
// token rides in a query parameter because browsers cannot set headers
// on websocket upgrades.
func SetupRealtimeRoutes(router *gin.RouterGroup, hub *Hub, cfg *config.Config) {
	router.GET("/ws", func(c *gin.Context) {
		propertyID, err := authenticateUpgrade(c, cfg)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}

		keys := map[string]interface{}{
			sessionPropertyKey: propertyID,
		}
		if err := hub.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Websocket upgrade failed", nil, err.Error())
		}
	})
}

func authenticateUpgrade(c *gin.Context, cfg *config.Config) (string, error) {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return "", fmt.Errorf("authentication token is required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return "", fmt.Errorf("invalid token type")
	}

	propertyID, _ := claims["property_id"].(string)
	if propertyID == "" {
		return "", fmt.Errorf("token is not scoped to a property")
	}

	return propertyID, nil
}
