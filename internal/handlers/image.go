package handlers

import (
	"log"
	"net/http"

	"lumera_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

//
// 🖼️ POST /api/images/upload (admin)
//
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier image requis"})
		return
	}

	// 5 Mo max
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image trop volumineuse (max 5 Mo)"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), file)
	if err != nil {
		log.Printf("❌ Erreur upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erreur lors de l'upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
