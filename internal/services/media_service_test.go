package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talento_backend/internal/repositories/memory"
	"talento_backend/internal/services"
)

func newMediaFixture(fs *fakeStorage) (services.MediaService, *memory.Store) {
	store := memory.NewStore()
	svc := services.NewMediaService(store.Media(), fs, "talent-media-kits", 1024, 3)
	return svc, store
}

func uploadFiles(names ...string) []services.UploadFile {
	files := make([]services.UploadFile, 0, len(names))
	for _, name := range names {
		files = append(files, services.UploadFile{
			OriginalName: name,
			Size:         4,
			MimeType:     "image/jpeg",
			Reader:       strings.NewReader("data"),
		})
	}
	return files
}

func TestMediaUploadBatch(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	svc, _ := newMediaFixture(fs)

	userID := "user-1"
	uploaded, err := svc.Upload(context.Background(), &userID, nil, uploadFiles("a.jpg", "b.png"))
	require.NoError(t, err)
	require.Len(t, uploaded, 2)

	for _, f := range uploaded {
		assert.NotEmpty(t, f.ProviderID)
		assert.Contains(t, f.URL, "https://cdn.test/")
		assert.True(t, strings.HasPrefix(f.Filename, "talent-media-kits/talent-"), f.Filename)
	}
	// расширение исходного файла сохраняется
	assert.True(t, strings.HasSuffix(uploaded[0].Filename, ".jpg"))

	mine, err := svc.ListByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestMediaUploadLimits(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	svc, _ := newMediaFixture(fs)

	_, err := svc.Upload(context.Background(), nil, nil, nil)
	assertHTTPCode(t, err, 400)

	// больше maxFiles за раз нельзя
	_, err = svc.Upload(context.Background(), nil, nil, uploadFiles("1.jpg", "2.jpg", "3.jpg", "4.jpg"))
	assertHTTPCode(t, err, 400)

	// файл больше потолка
	big := []services.UploadFile{{OriginalName: "big.mp4", Size: 2048, Reader: strings.NewReader("x")}}
	_, err = svc.Upload(context.Background(), nil, nil, big)
	assertHTTPCode(t, err, 400)

	assert.Equal(t, 0, fs.count())
}

// Ошибка на любом файле откатывает всю пачку: ни бинарников,
// ни записей метаданных не остается
func TestMediaUploadRollback(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	fs.failAfter = 2
	svc, store := newMediaFixture(fs)

	_, err := svc.Upload(context.Background(), nil, nil, uploadFiles("1.jpg", "2.jpg", "3.jpg"))
	assertHTTPCode(t, err, 500)

	assert.Equal(t, 0, fs.count())
	all, ferr := store.Media().FindAll(100)
	require.NoError(t, ferr)
	assert.Empty(t, all)
}

func TestMediaDelete(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	svc, _ := newMediaFixture(fs)

	uploaded, err := svc.Upload(context.Background(), nil, nil, uploadFiles("a.jpg"))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), uploaded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", deleted.OriginalName)
	assert.Equal(t, 0, fs.count())

	_, err = svc.Delete(context.Background(), uploaded[0].ID)
	assertHTTPCode(t, err, 404)
}

// Файл находится и по идентификатору провайдера, не только по id записи
func TestMediaDeleteByProviderID(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	svc, _ := newMediaFixture(fs)

	uploaded, err := svc.Upload(context.Background(), nil, nil, uploadFiles("a.jpg"))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), uploaded[0].ProviderID)
	require.NoError(t, err)
	assert.Equal(t, uploaded[0].ID, deleted.ID)
	assert.Equal(t, 0, fs.count())
}

func TestMediaStats(t *testing.T) {
	t.Parallel()
	fs := newFakeStorage()
	svc, _ := newMediaFixture(fs)

	userID := "user-1"
	talentID := "talent-1"
	_, err := svc.Upload(context.Background(), &userID, &talentID, uploadFiles("a.jpg", "b.jpg"))
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, int64(8), stats.TotalSize)
	assert.Equal(t, int64(1), stats.UniqueUsers)
	assert.Equal(t, int64(1), stats.UniqueTalents)
}
