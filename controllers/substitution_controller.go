package controllers

import (
	"net/http"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

// FindSubstitutes ranks catalog foods by nutritional similarity to the given
// food and returns isocaloric replacement quantities.
func FindSubstitutes(c *gin.Context) {
	var body struct {
		Original services.OriginalFood `json:"original" binding:"required"`
		Limit    int                   `json:"limit"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewSubstitutionService(catalogLookup())
	subs, err := svc.FindSubstitutes(body.Original, body.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}
