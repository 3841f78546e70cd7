package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/services"
	"github.com/tailorlink/tailorlink-api/utils"
)

// createAvatarUploadRequest builds a multipart request carrying one file part
func createAvatarUploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/users/me/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestGetMyProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := models.User{Auth0ID: "auth0|profile", Name: "Profile User", Email: "p@example.com", Role: "customer"}
	db.Create(&user)

	router := setupTestRouter()
	router.GET("/users/me/profile", mockAuthMiddleware(user.Auth0ID, "customer", "mock-token"), GetMyProfile)

	// First access creates an empty profile seeded with the account name
	req, _ := http.NewRequest(http.MethodGet, "/users/me/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Profile User", data["full_name"])
	assert.Equal(t, float64(user.ID), data["user_id"])

	var count int64
	db.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Second access returns the same row, not another one
	req, _ = http.NewRequest(http.MethodGet, "/users/me/profile", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Model(&models.Profile{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateMyProfile(t *testing.T) {
	tests := []struct {
		name           string
		payload        map[string]interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "successfully update profile",
			payload: map[string]interface{}{
				"full_name": "Updated Name",
				"phone":     "+91-9822222222",
				"address":   "7 Residency Road",
				"city":      "Bengaluru",
				"pincode":   "560095",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Updated Name", data["full_name"])
				assert.Equal(t, "+91-9822222222", data["phone"])
				assert.Equal(t, "560095", data["pincode"])
			},
		},
		{
			name:           "empty body clears the fields",
			payload:        map[string]interface{}{},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "", data["full_name"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			config.SetDB(db)

			user := models.User{Auth0ID: "auth0|profile", Name: "Profile User", Email: "p@example.com", Role: "customer"}
			db.Create(&user)

			router := setupTestRouter()
			router.PUT("/users/me/profile", mockAuthMiddleware(user.Auth0ID, "customer", "mock-token"), UpdateMyProfile)

			req, _ := http.NewRequest(http.MethodPut, "/users/me/profile", jsonBody(t, tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestUploadAvatar(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		content        []byte
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successfully upload png avatar",
			filename:       "avatar.png",
			content:        []byte("fake png bytes"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "successfully upload jpg avatar",
			filename:       "avatar.jpg",
			content:        []byte("fake jpg bytes"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "uppercase extension is accepted",
			filename:       "avatar.PNG",
			content:        []byte("fake png bytes"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "reject unsupported format",
			filename:       "avatar.gif",
			content:        []byte("fake gif bytes"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILE_FORMAT",
		},
		{
			name:           "reject oversized file",
			filename:       "big.png",
			content:        bytes.Repeat([]byte("x"), utils.MaxAvatarSize+1),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "FILE_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			config.SetDB(db)

			mockS3 := services.NewMockS3Service()
			mockS3.SetAsMockForTesting()
			defer services.SetS3Service(nil)

			user := models.User{Auth0ID: "auth0|avatar", Name: "Avatar User", Email: "av@example.com", Role: "customer"}
			db.Create(&user)

			router := setupTestRouter()
			router.POST("/users/me/avatar", mockAuthMiddleware(user.Auth0ID, "customer", "mock-token"), UploadAvatar)

			req := createAvatarUploadRequest(t, tt.filename, tt.content)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				assert.False(t, mockS3.FileExists("avatars/mock_"+tt.filename))
				return
			}

			data := response["data"].(map[string]interface{})
			s3Key, _ := data["avatar_s3_key"].(string)
			assert.True(t, strings.HasPrefix(s3Key, "avatars/"))
			assert.True(t, mockS3.FileExists(s3Key))

			// A presigned URL is attached for the stored key
			avatarURL, _ := data["avatar_url"].(string)
			assert.Contains(t, avatarURL, s3Key)
		})
	}
}

func TestUploadAvatar_StorageNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	services.SetS3Service(nil)

	user := models.User{Auth0ID: "auth0|avatar", Name: "Avatar User", Email: "av@example.com", Role: "customer"}
	db.Create(&user)

	router := setupTestRouter()
	router.POST("/users/me/avatar", mockAuthMiddleware(user.Auth0ID, "customer", "mock-token"), UploadAvatar)

	req := createAvatarUploadRequest(t, "avatar.png", []byte("fake png bytes"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "S3_ERROR", errorData["code"])
}
