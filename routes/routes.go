package routes

import (
	"time"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/controllers"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Recovery())
	r.Use(requestid.New())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Owner-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	catalog := r.Group("/catalog")
	{
		catalog.GET("", controllers.ListCatalogFoods)
		catalog.POST("", controllers.CreateCatalogFood)
		catalog.DELETE("/:name", controllers.DeactivateCatalogFood)
	}

	plans := r.Group("/plans")
	{
		plans.POST("", controllers.CreatePlan)
		plans.GET("", controllers.ListPlans)
		plans.GET("/:id", controllers.GetPlan)
		plans.PUT("/:id", controllers.UpdatePlan)
		plans.DELETE("/:id", controllers.DeletePlan)

		plans.POST("/:id/meals", controllers.AddMeal)
		plans.GET("/:id/analysis", controllers.AnalyzePlan)
		plans.GET("/:id/validation", controllers.ValidatePlan)

		plans.POST("/:id/versions", controllers.CreatePlanVersion)
		plans.GET("/:id/versions", controllers.ListPlanVersions)
		plans.POST("/:id/versions/:versionId/restore", controllers.RestorePlanVersion)
	}

	meals := r.Group("/meals")
	{
		meals.DELETE("/:mealId", controllers.DeleteMeal)
		meals.POST("/:mealId/foods", controllers.AddFood)
		meals.POST("/:mealId/macros", controllers.RecomputeMealMacros)
	}
	r.DELETE("/foods/:foodId", controllers.DeleteFood)

	distribution := r.Group("/distribution")
	{
		distribution.POST("", controllers.DistributeMacros)
		distribution.POST("/normalize", controllers.NormalizeDistribution)
		distribution.POST("/validate", controllers.ValidateDistribution)
		distribution.POST("/adjust", controllers.AdjustDistribution)
	}

	r.POST("/substitutions", controllers.FindSubstitutes)

	return r
}
