package handlers

import (
	"log"
	"net/http"

	"lumera_back_end/internal/apierrors"

	"github.com/gin-gonic/gin"
)

//
// 🚚 GET /api/deliveries
//
func GetDeliveries(c *gin.Context) {
	deliveries, err := deliveryStore.FindAll(c.Request.Context())
	if err != nil {
		log.Println("❌ Erreur récupération livraisons:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération livraisons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveries": deliveries})
}

//
// 🔍 GET /api/deliveries/:id
//
func GetDeliveryByID(c *gin.Context) {
	delivery, err := deliveryStore.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apierrors.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, delivery)
}
