package controllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/config"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupVersionRouter(t *testing.T) (*gin.Engine, *models.Plan) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	plan := &models.Plan{
		OwnerID: 7,
		Meals:   []models.Meal{{MealType: models.MealLunch, MealName: "Almoço", Position: 1}},
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/plans/:id/versions", CreatePlanVersion)
	return r, plan
}

// The label is optional, so snapshotting without a request body must work.
func TestCreatePlanVersion_EmptyBodyIsAccepted(t *testing.T) {
	r, plan := setupVersionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/plans/"+strconv.Itoa(int(plan.ID))+"/versions", nil)
	req.Header.Set("X-Owner-ID", "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for empty body, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	config.DB.Model(&models.PlanVersion{}).Where("plan_id = ?", plan.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected one stored version, got %d", count)
	}
}

func TestCreatePlanVersion_MalformedBodyIsRejected(t *testing.T) {
	r, plan := setupVersionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/plans/"+strconv.Itoa(int(plan.ID))+"/versions", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Owner-ID", "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}
