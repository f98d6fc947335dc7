package services_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"talento_backend/internal/services"
	"talento_backend/internal/storage"
)

// fakeStorage - провайдер хранилища в памяти для тестов.
// failAfter > 0 роняет каждую загрузку после n-й успешной
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      int
	failAfter int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(ctx context.Context, input storage.PutInput) (*storage.PutResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failAfter > 0 && f.puts >= f.failAfter {
		return nil, errors.New("provider unavailable")
	}

	data, err := io.ReadAll(input.Reader)
	if err != nil {
		return nil, err
	}
	f.objects[input.Key] = data
	f.puts++

	return &storage.PutResult{
		URL:        "https://cdn.test/" + input.Key,
		ProviderID: input.Key,
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, providerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, providerID)
	return nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func userCaller(id string) services.Caller {
	return services.Caller{ID: id, Email: id + "@test.com", Role: "user"}
}

func adminCaller() services.Caller {
	return services.Caller{ID: "admin-1", Email: "admin@test.com", Role: "admin"}
}
