package controllers

import (
	"net/http"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

type foodItemRequest struct {
	FoodName string  `json:"food_name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
	Position int     `json:"position"`
}

type mealRequest struct {
	MealType string            `json:"meal_type" binding:"required"`
	MealName string            `json:"meal_name"`
	Position int               `json:"position"`
	Foods    []foodItemRequest `json:"foods"`
}

type planRequest struct {
	TotalCalories *float64      `json:"total_calories"`
	TotalProtein  *float64      `json:"total_protein"`
	TotalCarbs    *float64      `json:"total_carbs"`
	TotalFats     *float64      `json:"total_fats"`
	Notes         string        `json:"notes"`
	Meals         []mealRequest `json:"meals"`
}

func CreatePlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var body planRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.Plan{
		OwnerID:       owner,
		TotalCalories: body.TotalCalories,
		TotalProtein:  body.TotalProtein,
		TotalCarbs:    body.TotalCarbs,
		TotalFats:     body.TotalFats,
		Notes:         body.Notes,
	}
	for _, m := range body.Meals {
		meal := models.Meal{
			MealType: m.MealType,
			MealName: m.MealName,
			Position: m.Position,
		}
		for _, f := range m.Foods {
			meal.Foods = append(meal.Foods, models.FoodItem{
				FoodName: f.FoodName,
				Quantity: f.Quantity,
				Unit:     f.Unit,
				Position: f.Position,
			})
		}
		plan.Meals = append(plan.Meals, meal)
	}

	svc := services.NewPlanService(config.DB, catalogLookup())
	created, err := svc.CreatePlan(&plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func ListPlans(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	plans, err := svc.ListPlans(owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func GetPlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	plan, err := svc.GetPlan(owner, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func UpdatePlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		TotalCalories *float64 `json:"total_calories"`
		TotalProtein  *float64 `json:"total_protein"`
		TotalCarbs    *float64 `json:"total_carbs"`
		TotalFats     *float64 `json:"total_fats"`
		Notes         string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewPlanService(config.DB, catalogLookup())
	plan, err := svc.UpdatePlanDetails(owner, planID,
		body.TotalCalories, body.TotalProtein, body.TotalCarbs, body.TotalFats, body.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func DeletePlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	if err := svc.DeletePlan(owner, planID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func AddMeal(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body mealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{
		MealType: body.MealType,
		MealName: body.MealName,
		Position: body.Position,
	}
	for _, f := range body.Foods {
		meal.Foods = append(meal.Foods, models.FoodItem{
			FoodName: f.FoodName,
			Quantity: f.Quantity,
			Unit:     f.Unit,
			Position: f.Position,
		})
	}

	svc := services.NewPlanService(config.DB, catalogLookup())
	created, err := svc.AddMeal(owner, planID, &meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func DeleteMeal(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "mealId")
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	if err := svc.DeleteMeal(owner, mealID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func AddFood(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "mealId")
	if !ok {
		return
	}
	var body foodItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.FoodItem{
		FoodName: body.FoodName,
		Quantity: body.Quantity,
		Unit:     body.Unit,
		Position: body.Position,
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	created, err := svc.AddFood(owner, mealID, &food)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func DeleteFood(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	foodID, ok := pathID(c, "foodId")
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	if err := svc.DeleteFood(owner, foodID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RecomputeMealMacros fills the meal and food snapshots from the catalog.
func RecomputeMealMacros(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "mealId")
	if !ok {
		return
	}
	svc := services.NewPlanService(config.DB, catalogLookup())
	meal, err := svc.RecomputeMealMacros(owner, mealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
