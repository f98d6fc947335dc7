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

func newTalentFixture() (services.TalentService, services.MediaService, *memory.Store, *fakeStorage) {
	store := memory.NewStore()
	fs := newFakeStorage()
	talentSvc := services.NewTalentService(store.Talents(), store.Media(), fs)
	mediaSvc := services.NewMediaService(store.Media(), fs, "talent-media-kits", 100*1024*1024, 10)
	return talentSvc, mediaSvc, store, fs
}

func validApplication() *dto.CreateTalentRequest {
	return &dto.CreateTalentRequest{
		FullName:      "Giulia Bianchi",
		BirthYear:     1995,
		City:          "Milano",
		Phone:         "+39 333 7654321",
		TermsAccepted: true,
	}
}

func TestTalentApplicationLifecycle(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()
	caller := userCaller("user-1")

	app, err := svc.Create(caller, validApplication())
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)
	require.NotNil(t, app.UserID)
	assert.Equal(t, "user-1", *app.UserID)

	// вторая активная заявка того же владельца отклоняется
	_, err = svc.Create(caller, validApplication())
	assertHTTPCode(t, err, 409)
	assert.Contains(t, err.Error(), "pending")

	// отказ по заявке
	rejected, err := svc.UpdateStatus(adminCaller(), app.ID, &dto.UpdateStatusRequest{
		Status:      "rejected",
		ReviewNotes: "Profilo incompleto",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "admin-1", rejected.ReviewedBy)
	assert.Equal(t, "Profilo incompleto", rejected.ReviewNotes)
	require.NotNil(t, rejected.ReviewedAt)

	// после отказа можно подать заново
	second, err := svc.Create(caller, validApplication())
	require.NoError(t, err)
	assert.NotEqual(t, app.ID, second.ID)

	// verified заявка снова блокирует новые подачи
	_, err = svc.UpdateStatus(adminCaller(), second.ID, &dto.UpdateStatusRequest{Status: "verified"})
	require.NoError(t, err)
	_, err = svc.Create(caller, validApplication())
	assertHTTPCode(t, err, 409)
	assert.Contains(t, err.Error(), "verified")
}

// Администратор создает заявки от имени площадки без владельца,
// поэтому ограничение одной активной заявки на него не действует
func TestTalentAdminBypass(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	first, err := svc.Create(adminCaller(), validApplication())
	require.NoError(t, err)
	assert.Nil(t, first.UserID)

	second, err := svc.Create(adminCaller(), validApplication())
	require.NoError(t, err)
	assert.Nil(t, second.UserID)
}

func TestTalentCreateRequiresTerms(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	req := validApplication()
	req.TermsAccepted = false
	_, err := svc.Create(userCaller("user-1"), req)
	assertHTTPCode(t, err, 400)
}

func TestTalentUpdateAuthorization(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	app, err := svc.Create(userCaller("owner"), validApplication())
	require.NoError(t, err)

	city := "Roma"
	updated, err := svc.Update(userCaller("owner"), app.ID, &dto.UpdateTalentRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Roma", updated.City)

	// чужую заявку обычный пользователь не правит
	_, err = svc.Update(userCaller("stranger"), app.ID, &dto.UpdateTalentRequest{City: &city})
	assertHTTPCode(t, err, 403)

	// поле price закрыто для владельца: 403 при любом значении,
	// даже заведомо невалидном
	price := "€€€"
	_, err = svc.Update(userCaller("owner"), app.ID, &dto.UpdateTalentRequest{Price: &price})
	assertHTTPCode(t, err, 403)
	badPrice := "abc"
	_, err = svc.Update(userCaller("owner"), app.ID, &dto.UpdateTalentRequest{Price: &badPrice})
	assertHTTPCode(t, err, 403)

	// администратору доступно и то и другое
	updated, err = svc.Update(adminCaller(), app.ID, &dto.UpdateTalentRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "€€€", updated.Price)

	// но формат цены проверяется и для него
	_, err = svc.Update(adminCaller(), app.ID, &dto.UpdateTalentRequest{Price: &badPrice})
	assertHTTPCode(t, err, 400)
}

func TestTalentStatusValidation(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	app, err := svc.Create(userCaller("user-1"), validApplication())
	require.NoError(t, err)

	// pending не является решением по заявке
	_, err = svc.UpdateStatus(adminCaller(), app.ID, &dto.UpdateStatusRequest{Status: "pending"})
	assertHTTPCode(t, err, 400)

	_, err = svc.UpdateStatus(adminCaller(), "missing-id", &dto.UpdateStatusRequest{Status: "verified"})
	assertHTTPCode(t, err, 404)
}

func TestCelebrityAndClicks(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	app, err := svc.Create(userCaller("user-1"), validApplication())
	require.NoError(t, err)
	assert.False(t, app.IsCelebrity)
	assert.Equal(t, 0, app.ClickCount)

	starred, err := svc.SetCelebrity(app.ID, true)
	require.NoError(t, err)
	assert.True(t, starred.IsCelebrity)

	unstarred, err := svc.SetCelebrity(app.ID, false)
	require.NoError(t, err)
	assert.False(t, unstarred.IsCelebrity)

	// счетчик кликов строго растет
	for want := 1; want <= 3; want++ {
		count, err := svc.TrackClick(app.ID)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
}

func TestVerifiedShowcase(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newTalentFixture()

	pending, err := svc.Create(userCaller("user-1"), validApplication())
	require.NoError(t, err)
	verified, err := svc.Create(userCaller("user-2"), validApplication())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(adminCaller(), verified.ID, &dto.UpdateStatusRequest{Status: "verified"})
	require.NoError(t, err)

	showcase, err := svc.ListVerified()
	require.NoError(t, err)
	require.Len(t, showcase, 1)
	assert.Equal(t, verified.ID, showcase[0].ID)
	assert.NotEqual(t, pending.ID, showcase[0].ID)
}

// Удаление заявки вычищает записи медиафайлов и бинарники у провайдера
func TestTalentDeleteCascades(t *testing.T) {
	t.Parallel()
	svc, mediaSvc, store, fs := newTalentFixture()

	app, err := svc.Create(userCaller("user-1"), validApplication())
	require.NoError(t, err)

	talentID := app.ID
	uploaded, err := mediaSvc.Upload(context.Background(), nil, &talentID, []services.UploadFile{
		{OriginalName: "photo.jpg", Size: 4, MimeType: "image/jpeg", Reader: strings.NewReader("data")},
		{OriginalName: "reel.mp4", Size: 4, MimeType: "video/mp4", Reader: strings.NewReader("data")},
	})
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	assert.Equal(t, 2, fs.count())

	_, err = svc.Delete(context.Background(), app.ID)
	require.NoError(t, err)

	remaining, err := store.Media().FindByTalentID(app.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Equal(t, 0, fs.count())
}
