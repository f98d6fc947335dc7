package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talento_backend/internal/auth"
	"talento_backend/internal/handlers"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories/memory"
	"talento_backend/internal/routes"
	"talento_backend/internal/services"
	"talento_backend/internal/storage"
	"talento_backend/internal/validator"
)

// testServer - полный HTTP стек поверх in-memory стора
// и локального хранилища во временной директории
type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	tm := auth.NewTokenManager("test-secret", time.Hour)

	localStorage, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:4000",
	})
	require.NoError(t, err)

	sc := services.NewServiceContainer(services.Repositories{
		Users:    store.Users(),
		Talents:  store.Talents(),
		Media:    store.Media(),
		Bookings: store.Bookings(),
	}, services.Options{
		TokenManager:   tm,
		Storage:        localStorage,
		FrontendURL:    "http://localhost:5173",
		UploadFolder:   "talent-media-kits",
		MaxUploadSize:  1024 * 1024,
		MaxUploadFiles: 10,
	})

	h := handlers.NewAppHandlers(sc, validator.New())

	router := gin.New()
	routes.RegisterRoutes(router, h, tm)

	return &testServer{router: router, store: store}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "body: %s", rec.Body.String())
	}
	return rec, parsed
}

// регистрирует пользователя и возвращает его токен
func (ts *testServer) loginUser(t *testing.T, email, password string) string {
	t.Helper()

	rec, _ := ts.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": password,
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := ts.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

// заводит администратора напрямую в сторе и логинит его
func (ts *testServer) loginAdmin(t *testing.T) string {
	t.Helper()

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	require.NoError(t, ts.store.Users().Create(&models.User{
		Email:         "admin@test.com",
		Name:          "Admin",
		PasswordHash:  &hash,
		Role:          models.UserRoleAdmin,
		EmailVerified: true,
	}))

	rec, body := ts.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@test.com",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	rec, body := ts.request(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "connected", body["database"])
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	token := ts.loginUser(t, "mario@test.com", "password123")

	// /me с токеном отдает профиль
	rec, body := ts.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "mario@test.com", user["email"])

	// без токена 401, с мусорным токеном тоже
	rec, body = ts.request(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = ts.request(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTalentApplicationFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	userToken := ts.loginUser(t, "talent@test.com", "password123")
	adminToken := ts.loginAdmin(t)

	application := gin.H{
		"fullName":      "Giulia Bianchi",
		"birthYear":     1995,
		"city":          "Milano",
		"phone":         "+39 333 7654321",
		"termsAccepted": true,
	}

	// без termsAccepted заявка не проходит валидацию
	invalid := gin.H{"fullName": "X", "birthYear": 1995, "city": "Roma", "phone": "1"}
	rec, body := ts.request(t, http.MethodPost, "/api/talent/applications", userToken, invalid)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, body = ts.request(t, http.MethodPost, "/api/talent/applications", userToken, application)
	require.Equal(t, http.StatusCreated, rec.Code)
	app := body["data"].(map[string]interface{})
	appID := app["id"].(string)
	assert.Equal(t, "pending", app["status"])

	// вторая активная заявка - 409
	rec, _ = ts.request(t, http.MethodPost, "/api/talent/applications", userToken, application)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// price закрыт для владельца: 403 даже при невалидном значении,
	// проверка прав идет раньше проверки формата
	rec, body = ts.request(t, http.MethodPatch, "/api/talent/applications/"+appID, userToken, gin.H{"price": "abc"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, body["success"])

	// решение по заявке доступно только администратору
	rec, _ = ts.request(t, http.MethodPatch, "/api/talent/applications/"+appID+"/status", userToken, gin.H{"status": "verified"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = ts.request(t, http.MethodPatch, "/api/talent/applications/"+appID+"/status", adminToken, gin.H{"status": "verified"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "verified", body["data"].(map[string]interface{})["status"])

	// проверенный талант виден в публичной витрине
	rec, body = ts.request(t, http.MethodGet, "/api/talents", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	talents := body["data"].([]interface{})
	require.Len(t, talents, 1)

	// celebrity-status требует явного булева значения
	rec, _ = ts.request(t, http.MethodPatch, "/api/talents/"+appID+"/celebrity-status", adminToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = ts.request(t, http.MethodPatch, "/api/talents/"+appID+"/celebrity-status", adminToken, gin.H{"isCelebrity": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isCelebrity"])

	// клики публичные и монотонные
	rec, body = ts.request(t, http.MethodPost, "/api/talents/"+appID+"/track-click", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["clickCount"])
}

// Идентификатор провайдера содержит слэши, маршрут удаления
// для администратора обязан его принять целиком
func TestMediaAdminDeleteByProviderID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	userToken := ts.loginUser(t, "uploader@test.com", "password123")
	adminToken := ts.loginAdmin(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("mediaKit", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/media-kit", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var uploadBody map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploadBody))
	files := uploadBody["files"].([]interface{})
	require.Len(t, files, 1)
	providerID := files[0].(map[string]interface{})["providerId"].(string)
	require.True(t, strings.Contains(providerID, "/"), providerID)

	// обычному пользователю маршрут закрыт
	rec, _ = ts.request(t, http.MethodDelete, "/api/admin/media-kits/"+providerID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := ts.request(t, http.MethodDelete, "/api/admin/media-kits/"+providerID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "photo.jpg", body["deletedFile"].(map[string]interface{})["originalName"])

	// повторное удаление - уже 404
	rec, _ = ts.request(t, http.MethodDelete, "/api/admin/media-kits/"+providerID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingEndpoints(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	userToken := ts.loginUser(t, "booker@test.com", "password123")
	adminToken := ts.loginAdmin(t)

	booking := gin.H{
		"phoneNumber": "+39 333 1234567",
		"timeSlot": gin.H{
			"date":     "2026-09-15",
			"time":     "15:00",
			"datetime": "2026-09-15T15:00:00Z",
		},
		"talents":    []string{"talent-1"},
		"priceRange": "€€",
	}

	rec, body := ts.request(t, http.MethodPost, "/api/bookings", userToken, booking)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := body["data"].(map[string]interface{})
	bookingID := created["id"].(string)
	assert.Equal(t, "in attesa di conferma", created["status"])

	// список всех бронирований - только администратор
	rec, _ = ts.request(t, http.MethodGet, "/api/bookings", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = ts.request(t, http.MethodGet, "/api/bookings", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	// недопустимый статус отбрасывается валидатором
	rec, _ = ts.request(t, http.MethodPatch, "/api/bookings/"+bookingID+"/status", adminToken, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = ts.request(t, http.MethodPatch, "/api/bookings/"+bookingID+"/status", adminToken, gin.H{"status": "confermata"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confermata", body["data"].(map[string]interface{})["status"])
}
