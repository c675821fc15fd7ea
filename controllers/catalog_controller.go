package controllers

import (
	"net/http"
	"strconv"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

func ListCatalogFoods(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	svc := services.NewCatalogService(config.DB)
	foods, err := svc.Search(c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func CreateCatalogFood(c *gin.Context) {
	var body struct {
		Name     string  `json:"name" binding:"required"`
		Category string  `json:"category"`
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
		Fiber    float64 `json:"fiber"`
		Sodium   float64 `json:"sodium"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.CatalogFood{
		Name:     body.Name,
		Category: body.Category,
		Calories: body.Calories,
		Protein:  body.Protein,
		Carbs:    body.Carbs,
		Fats:     body.Fats,
		Fiber:    body.Fiber,
		Sodium:   body.Sodium,
	}
	if err := services.NewCatalogService(config.DB).Create(&food); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func DeactivateCatalogFood(c *gin.Context) {
	if err := services.NewCatalogService(config.DB).Deactivate(c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
