package controllers

import (
	"net/http"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

func DistributeMacros(c *gin.Context) {
	var body struct {
		Totals    services.MacroTargets `json:"totals"`
		MealTypes []string              `json:"meal_types" binding:"required"`
		Strategy  string                `json:"strategy"`
		Normalize bool                  `json:"normalize"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Strategy == "" {
		body.Strategy = services.StrategyBalanced
	}

	dist, err := services.DistributeMacros(body.Totals, body.MealTypes, body.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Normalize {
		dist = services.NormalizeDistribution(dist, body.Totals)
	}
	c.JSON(http.StatusOK, gin.H{
		"distribution": dist,
		"check":        services.ValidateDistribution(dist, body.Totals),
	})
}

func NormalizeDistribution(c *gin.Context) {
	var body struct {
		Totals       services.MacroTargets      `json:"totals"`
		Distribution []services.MealMacroTarget `json:"distribution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dist := services.NormalizeDistribution(body.Distribution, body.Totals)
	c.JSON(http.StatusOK, gin.H{
		"distribution": dist,
		"check":        services.ValidateDistribution(dist, body.Totals),
	})
}

func ValidateDistribution(c *gin.Context) {
	var body struct {
		Totals       services.MacroTargets      `json:"totals"`
		Distribution []services.MealMacroTarget `json:"distribution" binding:"required"`
		Tolerance    float64                    `json:"tolerance"` // kcal, 0 means default
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ValidateDistribution(body.Distribution, body.Totals, body.Tolerance))
}

func AdjustDistribution(c *gin.Context) {
	var body struct {
		Distribution []services.MealMacroTarget `json:"distribution" binding:"required"`
		MealIndex    int                        `json:"meal_index"`
		Macros       services.PartialMacros     `json:"macros"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dist, err := services.AdjustDistribution(body.Distribution, body.MealIndex, body.Macros)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"distribution": dist})
}
