package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talento_backend/internal/repositories/memory"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
)

func TestAdminCreatePasswordlessUser(t *testing.T) {
	t.Parallel()
	store := memory.NewStore()
	svc := services.NewUserService(store.Users())

	user, err := svc.AdminCreate(&dto.AdminCreateUserRequest{
		Email: "invited@test.com",
		Name:  "Invited",
	})
	require.NoError(t, err)

	stored, err := store.Users().FindByEmail("invited@test.com")
	require.NoError(t, err)
	assert.False(t, stored.HasPassword())
	assert.Equal(t, user.ID, stored.ID)

	// повторное создание с тем же email - конфликт
	_, err = svc.AdminCreate(&dto.AdminCreateUserRequest{Email: "invited@test.com", Name: "Again"})
	assertHTTPCode(t, err, 409)
}

func TestUserRoleAndStats(t *testing.T) {
	t.Parallel()
	store := memory.NewStore()
	svc := services.NewUserService(store.Users())

	user, err := svc.AdminCreate(&dto.AdminCreateUserRequest{Email: "u@test.com", Name: "U", Password: "password123"})
	require.NoError(t, err)

	promoted, err := svc.UpdateRole(user.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", promoted.Role)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.AdminUsers)
	assert.Equal(t, int64(0), stats.RegularUsers)

	_, err = svc.UpdateRole("missing", "admin")
	assertHTTPCode(t, err, 404)
}

// Удаление пользователя тянет за собой его заявки и их медиафайлы
func TestUserDeleteCascades(t *testing.T) {
	t.Parallel()
	store := memory.NewStore()
	userSvc := services.NewUserService(store.Users())
	fs := newFakeStorage()
	talentSvc := services.NewTalentService(store.Talents(), store.Media(), fs)
	mediaSvc := services.NewMediaService(store.Media(), fs, "talent-media-kits", 1024, 10)

	user, err := userSvc.AdminCreate(&dto.AdminCreateUserRequest{Email: "t@test.com", Name: "T", Password: "password123"})
	require.NoError(t, err)

	app, err := talentSvc.Create(services.Caller{ID: user.ID, Email: user.Email, Role: "user"}, validApplication())
	require.NoError(t, err)

	talentID := app.ID
	_, err = mediaSvc.Upload(context.Background(), &user.ID, &talentID, []services.UploadFile{
		{OriginalName: "a.jpg", Size: 4, MimeType: "image/jpeg", Reader: strings.NewReader("data")},
	})
	require.NoError(t, err)

	require.NoError(t, userSvc.Delete(user.ID))

	apps, err := store.Talents().FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, apps)

	media, err := store.Media().FindByTalentID(app.ID)
	require.NoError(t, err)
	assert.Empty(t, media)

	err = userSvc.Delete(user.ID)
	assertHTTPCode(t, err, 404)
}
