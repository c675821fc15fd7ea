package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/services"

	"github.com/gin-gonic/gin"
)

func CreatePlanVersion(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Label string `json:"label"`
	}
	// label is optional, so an empty body is fine
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// ownership check before touching history
	if _, err := services.NewPlanService(config.DB, catalogLookup()).GetPlan(owner, planID); err != nil {
		respondError(c, err)
		return
	}

	version, err := services.NewVersionService(config.DB).CreateVersion(planID, body.Label)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, version)
}

func ListPlanVersions(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := services.NewPlanService(config.DB, catalogLookup()).GetPlan(owner, planID); err != nil {
		respondError(c, err)
		return
	}

	versions, err := services.NewVersionService(config.DB).ListVersions(planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

// RestorePlanVersion rewrites the plan from a stored version. The current
// state is snapshotted as a backup first, so the operation is undoable.
func RestorePlanVersion(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	versionID, ok := pathID(c, "versionId")
	if !ok {
		return
	}
	planSvc := services.NewPlanService(config.DB, catalogLookup())
	if _, err := planSvc.GetPlan(owner, planID); err != nil {
		respondError(c, err)
		return
	}

	restored, err := services.NewVersionService(config.DB).RestoreVersion(planID, versionID)
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := planSvc.GetPlan(owner, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restored_version": restored.VersionNumber,
		"plan":             plan,
	})
}
