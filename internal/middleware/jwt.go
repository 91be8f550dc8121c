package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"lumera_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}

// AuthRequired exige un token Bearer valide et place user_id/email/role
// dans le contexte gin
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearer(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth accepte les requêtes invité : si un token valide est présent,
// l'identité est posée dans le contexte, sinon la requête continue anonyme.
// C'est ce qui permet les commandes invité avec email explicite.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := parseBearer(c)
		if err != nil {
			// token présent mais invalide : on refuse plutôt que de
			// dégrader silencieusement en invité
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin : réservé au back-office (changement de statut, stock)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext reconstruit l'identité optionnelle pour la couche service
func IdentityFromContext(c *gin.Context) *models.Identity {
	userID := c.GetString("user_id")
	if userID == "" {
		return nil
	}
	return &models.Identity{
		UserID: userID,
		Email:  c.GetString("email"),
	}
}

func parseBearer(c *gin.Context) (jwt.MapClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("token manquant")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("format Authorization invalide")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token invalide")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token invalide")
	}

	if _, ok := claims["user_id"].(string); !ok {
		return nil, fmt.Errorf("user_id manquant")
	}

	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	if userID, ok := claims["user_id"].(string); ok {
		c.Set("user_id", userID)
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
