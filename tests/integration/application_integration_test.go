package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/controllers"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/tests/testutil"
)

// ApplicationIntegrationTestSuite covers the tailor onboarding flow: apply,
// admin review, public listing
type ApplicationIntegrationTestSuite struct {
	suite.Suite
	router    *gin.Engine
	db        *gorm.DB
	applicant models.User
	admin     models.User
}

// SetupSuite runs once before all tests
func (suite *ApplicationIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("GO_ENV", "test")
	os.Setenv("DATABASE_URL", "sqlite://:memory:")
	os.Setenv("AUTH0_DOMAIN", "tailorlink-test.us.auth0.com")
	os.Setenv("AUTH0_AUDIENCE", "https://api.tailorlink.test")

	cfg, err := config.Load()
	suite.NoError(err)
	config.SetConfig(cfg)
}

// SetupTest runs before each test
func (suite *ApplicationIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.User{}, &models.TailorApplication{})
	suite.NoError(err)

	config.SetDB(db)

	suite.applicant = models.User{Auth0ID: "auth0|applicant", Name: "Aspiring Tailor", Email: "aspiring@test.com", Role: "customer"}
	suite.admin = models.User{Auth0ID: "auth0|admin", Name: "Admin", Email: "admin@test.com", Role: "admin"}
	suite.NoError(db.Create(&suite.applicant).Error)
	suite.NoError(db.Create(&suite.admin).Error)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1")
	{
		v1.GET("/tailors", controllers.ListTailors)
		v1.GET("/tailors/:id", controllers.GetTailor)
		v1.POST("/tailors/apply", testutil.MockAuthMiddleware("auth0|applicant", "customer"), controllers.ApplyAsTailor)
		v1.GET("/admin/applications", testutil.MockAuthMiddleware("auth0|admin", "admin"), controllers.ListApplications)
		v1.PUT("/admin/applications/:id", testutil.MockAuthMiddleware("auth0|admin", "admin"), controllers.DecideApplication)
	}
}

// TearDownTest runs after each test
func (suite *ApplicationIntegrationTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *ApplicationIntegrationTestSuite) request(method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

// TestApplicationWorkflow_ApplyApproveAndList walks the happy path
func (suite *ApplicationIntegrationTestSuite) TestApplicationWorkflow_ApplyApproveAndList() {
	// Submit the application
	w, response := suite.request("POST", "/api/v1/tailors/apply", map[string]interface{}{
		"business_name":    "Aspiring Stitches",
		"experience_years": 4,
		"specializations":  []string{"blouses", "lehengas"},
		"shop_address":     "9 Commercial Street",
		"city":             "Bengaluru",
		"pincode":          "560001",
		"phone":            "+91-9833333333",
		"pricing_range":    "mid-range",
	})
	suite.Equal(http.StatusCreated, w.Code)
	applicationID := response["data"].(map[string]interface{})["id"].(string)

	// Not publicly visible while pending
	w, _ = suite.request("GET", "/api/v1/tailors/"+applicationID, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	// Admin sees it in the pending queue
	w, response = suite.request("GET", "/api/v1/admin/applications?status=pending", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"].([]interface{}), 1)

	// Admin approves
	w, response = suite.request("PUT", "/api/v1/admin/applications/"+applicationID, map[string]interface{}{
		"status":      "approved",
		"admin_notes": "Welcome aboard",
	})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("approved", response["data"].(map[string]interface{})["status"])

	// The applicant's account is now a tailor account
	var promoted models.User
	suite.NoError(suite.db.First(&promoted, suite.applicant.ID).Error)
	suite.Equal("tailor", promoted.Role)

	// And the shop shows up in the public directory
	w, response = suite.request("GET", "/api/v1/tailors", nil)
	suite.Equal(http.StatusOK, w.Code)
	listed := response["data"].([]interface{})
	suite.Len(listed, 1)
	suite.Equal("Aspiring Stitches", listed[0].(map[string]interface{})["business_name"])
}

// TestApplicationWorkflow_RejectionKeepsDirectoryEmpty checks the reject path
func (suite *ApplicationIntegrationTestSuite) TestApplicationWorkflow_RejectionKeepsDirectoryEmpty() {
	w, response := suite.request("POST", "/api/v1/tailors/apply", map[string]interface{}{
		"business_name":    "Rejected Stitches",
		"experience_years": 0,
		"specializations":  []string{"shirts"},
		"shop_address":     "1 Side Street",
		"city":             "Bengaluru",
		"pincode":          "560002",
		"phone":            "+91-9844444444",
		"pricing_range":    "budget",
	})
	suite.Equal(http.StatusCreated, w.Code)
	applicationID := response["data"].(map[string]interface{})["id"].(string)

	w, _ = suite.request("PUT", "/api/v1/admin/applications/"+applicationID, map[string]interface{}{
		"status":      "rejected",
		"admin_notes": "Needs more experience",
	})
	suite.Equal(http.StatusOK, w.Code)

	// Role unchanged, directory empty
	var user models.User
	suite.NoError(suite.db.First(&user, suite.applicant.ID).Error)
	suite.Equal("customer", user.Role)

	w, response = suite.request("GET", "/api/v1/tailors", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response["data"].([]interface{}), 0)
}

// TestApplicationIntegrationTestSuite runs the test suite
func TestApplicationIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationIntegrationTestSuite))
}
