package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/domain/activity"
	domain "project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/domain/user"
)

type FakeTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (ports.Identity, error)
}

func (f *FakeTokenVerifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	if f.VerifyFunc == nil {
		return ports.Identity{}, errors.New("not used")
	}
	return f.VerifyFunc(ctx, token)
}

type FakeObjectStore struct {
	PutFunc    func(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	puts    []string
	deletes []string
}

func (f *FakeObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	f.puts = append(f.puts, key)
	f.mu.Unlock()
	if f.PutFunc == nil {
		return "https://files.example.com/" + key, nil
	}
	return f.PutFunc(ctx, key, data, contentType)
}

func (f *FakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, key)
	f.mu.Unlock()
	if f.DeleteFunc == nil {
		return nil
	}
	return f.DeleteFunc(ctx, key)
}

func (f *FakeObjectStore) Puts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.puts...)
}

func (f *FakeObjectStore) Deletes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

type FakeStoredFileRepository struct {
	CreateStoredFileFunc func(ctx context.Context, userID user.ID, req *domain.StoredFile) (*domain.StoredFile, error)
	FetchStoredFilesFunc func(ctx context.Context, userID user.ID, filter domain.Filter) (domain.StoredFiles, error)

	mu      sync.Mutex
	creates int
}

func (f *FakeStoredFileRepository) CreateStoredFile(ctx context.Context, userID user.ID, req *domain.StoredFile) (*domain.StoredFile, error) {
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()
	if f.CreateStoredFileFunc == nil {
		out := *req
		out.UUID = uuid.New()
		return &out, nil
	}
	return f.CreateStoredFileFunc(ctx, userID, req)
}

func (f *FakeStoredFileRepository) FetchStoredFiles(ctx context.Context, userID user.ID, filter domain.Filter) (domain.StoredFiles, error) {
	if f.FetchStoredFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchStoredFilesFunc(ctx, userID, filter)
}

type avatarUpdate struct {
	id  user.ID
	url string
}

type FakeUserRepository struct {
	FetchUserByIDFunc   func(ctx context.Context, uuid user.UUID) (*user.User, error)
	FetchInternalIDFunc func(ctx context.Context, uuid user.UUID) (user.ID, error)
	UpdateAvatarFunc    func(ctx context.Context, id user.ID, avatarURL string) error

	avatarUpdates []avatarUpdate
}

func (f *FakeUserRepository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByIDFunc(ctx, uuid)
}

func (f *FakeUserRepository) FetchInternalID(ctx context.Context, uuid user.UUID) (user.ID, error) {
	if f.FetchInternalIDFunc == nil {
		return user.ID(42), nil
	}
	return f.FetchInternalIDFunc(ctx, uuid)
}

func (f *FakeUserRepository) UpdateAvatar(ctx context.Context, id user.ID, avatarURL string) error {
	f.avatarUpdates = append(f.avatarUpdates, avatarUpdate{id: id, url: avatarURL})
	if f.UpdateAvatarFunc == nil {
		return nil
	}
	return f.UpdateAvatarFunc(ctx, id, avatarURL)
}

type FakeActivityRepository struct {
	AppendActivityFunc func(ctx context.Context, rec activity.Record) error

	mu      sync.Mutex
	records []activity.Record
}

func (f *FakeActivityRepository) AppendActivity(ctx context.Context, rec activity.Record) error {
	f.mu.Lock()
	f.records = append(f.records, rec)
	f.mu.Unlock()
	if f.AppendActivityFunc == nil {
		return nil
	}
	return f.AppendActivityFunc(ctx, rec)
}

type FakePublisher struct {
	Full bool

	mu     sync.Mutex
	events []activity.Record
}

func (f *FakePublisher) Publish(rec activity.Record) bool {
	if f.Full {
		return false
	}
	f.mu.Lock()
	f.events = append(f.events, rec)
	f.mu.Unlock()
	return true
}

func (f *FakePublisher) PublisherWorker(ctx context.Context) {}
func (f *FakePublisher) Close() error                        { return nil }
