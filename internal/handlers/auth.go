package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// ================== AUTH LOCALE ==================

//
// 📝 POST /api/auth/register
//
func Register(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		Telephone string `json:"telephone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	database.InitPreparedStatements()

	// email déjà pris ?
	var existingID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	if err := database.GetPreparedInsertUser().Bind(
		userID, input.Email, hashedPassword, input.Name, input.Telephone, "customer", now).Exec(); err != nil {
		log.Println("❌ Erreur insertion utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(input.Email, userID).Exec(); err != nil {
		log.Println("⚠️ Erreur indexation users_by_email:", err)
	}

	user := models.User{
		ID:        userID.String(),
		Name:      input.Name,
		Email:     input.Email,
		Telephone: input.Telephone,
		Role:      "customer",
		CreatedAt: now,
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

//
// 🔐 POST /api/auth/login
//
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	database.InitPreparedStatements()

	var userID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if err := database.GetPreparedUpdateLastLogin().Bind(time.Now(), userID).Exec(); err != nil {
		log.Println("⚠️ Erreur mise à jour last_login:", err)
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

//
// 👤 GET /api/auth/me
//
func Me(c *gin.Context) {
	userID, err := gocql.ParseUUID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ================== MOT DE PASSE OUBLIÉ ==================

//
// 📮 POST /api/auth/forgot-password
//
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	database.InitPreparedStatements()

	// réponse identique que l'email existe ou non, pour ne pas révéler
	// les comptes existants
	response := gin.H{"message": "Si un compte existe avec cet email, un lien de réinitialisation a été envoyé"}

	var userID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	token := generateResetToken()
	ctx := context.Background()
	database.Redis.Set(ctx, "password_reset:"+token, userID.String(), 1*time.Hour)

	go func() {
		if err := utils.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
			log.Printf("❌ Erreur envoi email réinitialisation: %v", err)
		}
	}()

	c.JSON(http.StatusOK, response)
}

//
// 🔑 POST /api/auth/reset-password
//
func ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()
	key := "password_reset:" + input.Token

	userIDStr, err := database.Redis.Get(ctx, key).Result()
	if err == redis.Nil || userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token invalide ou expiré"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	userID, err := gocql.ParseUUID(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token invalide ou expiré"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE users SET password = ? WHERE user_id = ?`,
		hashedPassword, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour mot de passe"})
		return
	}

	// token à usage unique
	database.Redis.Del(ctx, key)

	log.Printf("✅ Mot de passe réinitialisé pour user %s", userIDStr)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé avec succès"})
}

// fetchUser lit un utilisateur complet via le prepared statement
func fetchUser(userID gocql.UUID) (*models.User, error) {
	var user models.User
	var lastLogin *time.Time

	err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&user.Email, &user.Password, &user.Name, &user.Telephone,
		&user.Role, &user.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}

	user.ID = userID.String()
	user.LastLogin = lastLogin
	return &user, nil
}

func generateResetToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
