package controllers

import (
	"net/http"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

// AnalyzePlan returns the nutritional report for a plan: totals, macro
// percentages, fiber density, density score and recommendations.
func AnalyzePlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	catalog := catalogLookup()
	planSvc := services.NewPlanService(config.DB, catalog)
	plan, err := planSvc.GetPlan(owner, planID)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := services.NewAnalysisService(catalog).AnalyzePlan(plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ValidatePlan classifies a plan's structural issues into errors and
// warnings. It never blocks anything itself; the caller decides.
func ValidatePlan(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	planSvc := services.NewPlanService(config.DB, catalogLookup())
	plan, err := planSvc.GetPlan(owner, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ValidatePlan(plan))
}
