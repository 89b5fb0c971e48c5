package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"safechain-api/internal/apperr"
	domainActivity "safechain-api/internal/domain/activity"
	domainFile "safechain-api/internal/domain/file"
	domainUser "safechain-api/internal/domain/user"
	fileDB "safechain-api/internal/infrastructure/db/postgres/file"
	"safechain-api/internal/infrastructure/mq"
)

type FakeUserRepository struct {
	FetchByUUIDFunc  func(ctx context.Context, uuid domainUser.UUID) (*domainUser.User, error)
	FetchByEmailFunc func(ctx context.Context, email string) (*domainUser.User, error)
	FetchAllFunc     func(ctx context.Context) (domainUser.Users, error)
	CreateFunc       func(ctx context.Context, req domainUser.User) (*domainUser.User, error)
	DeleteFunc       func(ctx context.Context, id domainUser.ID) ([]string, error)
}

func (f *FakeUserRepository) FetchByUUID(ctx context.Context, uuid domainUser.UUID) (*domainUser.User, error) {
	if f.FetchByUUIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByUUIDFunc(ctx, uuid)
}
func (f *FakeUserRepository) FetchByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	if f.FetchByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByEmailFunc(ctx, email)
}
func (f *FakeUserRepository) FetchAll(ctx context.Context) (domainUser.Users, error) {
	if f.FetchAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAllFunc(ctx)
}
func (f *FakeUserRepository) Create(ctx context.Context, req domainUser.User) (*domainUser.User, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, req)
}
func (f *FakeUserRepository) Delete(ctx context.Context, id domainUser.ID) ([]string, error) {
	if f.DeleteFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteFunc(ctx, id)
}

type FakeFileRepository struct {
	FetchByUUIDFunc     func(ctx context.Context, uuid domainFile.UUID) (*domainFile.File, error)
	FetchOwnedByFunc    func(ctx context.Context, ownerID domainUser.ID) (domainFile.Files, error)
	FetchSharedWithFunc func(ctx context.Context, userID domainUser.ID) (domainFile.Files, error)
	CreateFunc          func(ctx context.Context, f *domainFile.File, entry *domainActivity.Entry) (*domainFile.File, error)
	CreateShareFunc     func(ctx context.Context, fileID domainFile.ID, targetID, grantedBy domainUser.ID, entry *domainActivity.Entry) error
	DeleteShareFunc     func(ctx context.Context, fileID domainFile.ID, targetID domainUser.ID, entry *domainActivity.Entry) error
	FetchSharesFunc     func(ctx context.Context, fileID domainFile.ID) (domainFile.Shares, error)
	HasShareFunc        func(ctx context.Context, fileID domainFile.ID, userID domainUser.ID) (bool, error)
	DeleteFunc          func(ctx context.Context, fileID domainFile.ID) error
}

func (f *FakeFileRepository) FetchByUUID(ctx context.Context, uuid domainFile.UUID) (*domainFile.File, error) {
	if f.FetchByUUIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByUUIDFunc(ctx, uuid)
}
func (f *FakeFileRepository) FetchOwnedBy(ctx context.Context, ownerID domainUser.ID) (domainFile.Files, error) {
	if f.FetchOwnedByFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchOwnedByFunc(ctx, ownerID)
}
func (f *FakeFileRepository) FetchSharedWith(ctx context.Context, userID domainUser.ID) (domainFile.Files, error) {
	if f.FetchSharedWithFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchSharedWithFunc(ctx, userID)
}
func (f *FakeFileRepository) Create(ctx context.Context, file *domainFile.File, entry *domainActivity.Entry) (*domainFile.File, error) {
	if f.CreateFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFunc(ctx, file, entry)
}
func (f *FakeFileRepository) CreateShare(ctx context.Context, fileID domainFile.ID, targetID, grantedBy domainUser.ID, entry *domainActivity.Entry) error {
	if f.CreateShareFunc == nil {
		return errors.New("not used")
	}
	return f.CreateShareFunc(ctx, fileID, targetID, grantedBy, entry)
}
func (f *FakeFileRepository) DeleteShare(ctx context.Context, fileID domainFile.ID, targetID domainUser.ID, entry *domainActivity.Entry) error {
	if f.DeleteShareFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteShareFunc(ctx, fileID, targetID, entry)
}
func (f *FakeFileRepository) FetchShares(ctx context.Context, fileID domainFile.ID) (domainFile.Shares, error) {
	if f.FetchSharesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchSharesFunc(ctx, fileID)
}
func (f *FakeFileRepository) HasShare(ctx context.Context, fileID domainFile.ID, userID domainUser.ID) (bool, error) {
	if f.HasShareFunc == nil {
		return false, errors.New("not used")
	}
	return f.HasShareFunc(ctx, fileID, userID)
}
func (f *FakeFileRepository) Delete(ctx context.Context, fileID domainFile.ID) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, fileID)
}

type FakeActivityRepository struct {
	AppendFunc       func(ctx context.Context, e *domainActivity.Entry) (*domainActivity.Entry, error)
	FetchAllFunc     func(ctx context.Context) (domainActivity.Entries, error)
	FetchByActorFunc func(ctx context.Context, actorID domainUser.ID) (domainActivity.Entries, error)
}

func (f *FakeActivityRepository) Append(ctx context.Context, e *domainActivity.Entry) (*domainActivity.Entry, error) {
	if f.AppendFunc == nil {
		return e, nil
	}
	return f.AppendFunc(ctx, e)
}
func (f *FakeActivityRepository) FetchAll(ctx context.Context) (domainActivity.Entries, error) {
	if f.FetchAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchAllFunc(ctx)
}
func (f *FakeActivityRepository) FetchByActor(ctx context.Context, actorID domainUser.ID) (domainActivity.Entries, error) {
	if f.FetchByActorFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByActorFunc(ctx, actorID)
}

type FakeMQ struct {
	in chan mq.Event
}

func NewFakeMQ() *FakeMQ { return &FakeMQ{in: make(chan mq.Event, 16)} }

func (f *FakeMQ) Connect(ctx context.Context, dsn string) error { return nil }
func (f *FakeMQ) Init() error                                   { return nil }
func (f *FakeMQ) PublisherWorker(ctx context.Context)           {}
func (f *FakeMQ) GetInputChan() chan mq.Event                   { return f.in }
func (f *FakeMQ) GetConn() *amqp091.Connection                  { return nil }

type FakeBlobStore struct {
	SaveFunc   func(ctx context.Context, key string, r io.Reader) (int64, error)
	PathFunc   func(key string) (string, error)
	RemoveFunc func(key string) error
}

func (f *FakeBlobStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	if f.SaveFunc == nil {
		return 0, errors.New("not used")
	}
	return f.SaveFunc(ctx, key, r)
}
func (f *FakeBlobStore) Path(key string) (string, error) {
	if f.PathFunc == nil {
		return "", errors.New("not used")
	}
	return f.PathFunc(key)
}
func (f *FakeBlobStore) Remove(key string) error {
	if f.RemoveFunc == nil {
		return errors.New("not used")
	}
	return f.RemoveFunc(key)
}

func testCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "safechain_test", Name: "general_counters"},
		[]string{"result"})
}

func ownerAndFile() (*domainUser.User, *domainFile.File) {
	owner := &domainUser.User{
		ID:       1,
		UUID:     uuid.New(),
		Email:    "alice@example.com",
		FullName: "Alice Smith",
		Role:     domainUser.RoleUser,
	}
	f := &domainFile.File{
		ID:         10,
		UUID:       uuid.New(),
		OwnerID:    owner.ID,
		OwnerName:  owner.FullName,
		FileName:   "report.pdf",
		StorageKey: "aabbccdd",
	}
	return owner, f
}

func newFileService(blob *FakeBlobStore, files *FakeFileRepository, users *FakeUserRepository, acts *FakeActivityRepository) *FileService {
	return &FileService{
		logger:             zap.NewNop(),
		blob:               blob,
		fileRepository:     files,
		userRepository:     users,
		activityRepository: acts,
		mq:                 NewFakeMQ(),
		mCounter:           testCounter(),
	}
}

func TestFileService_Share(t *testing.T) {
	owner, f := ownerAndFile()
	stranger := &domainUser.User{ID: 2, UUID: uuid.New(), Email: "eve@example.com", FullName: "Eve Jones", Role: domainUser.RoleUser}
	bob := &domainUser.User{ID: 3, UUID: uuid.New(), Email: "bob@example.com", FullName: "Bob Brown", Role: domainUser.RoleUser}

	usersByUUID := map[domainUser.UUID]*domainUser.User{
		owner.UUID:    owner,
		stranger.UUID: stranger,
		bob.UUID:      bob,
	}
	userRepo := func() *FakeUserRepository {
		return &FakeUserRepository{
			FetchByUUIDFunc: func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
				return usersByUUID[id], nil
			},
			FetchByEmailFunc: func(ctx context.Context, email string) (*domainUser.User, error) {
				for _, u := range usersByUUID {
					if u.Email == email {
						return u, nil
					}
				}
				return nil, nil
			},
		}
	}
	fileByUUID := func() *FakeFileRepository {
		return &FakeFileRepository{
			FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) {
				if id == f.UUID {
					return f, nil
				}
				return nil, nil
			},
		}
	}

	tests := []struct {
		name        string
		principal   domainUser.UUID
		fileUUID    domainFile.UUID
		targetEmail string
		shareErr    error
		wantKind    apperr.Kind
		wantMsg     string
	}{
		{
			name:        "owner shares with another user",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: "bob@example.com",
		},
		{
			name:        "target email is matched in canonical form",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: " Bob@Example.COM ",
		},
		{
			name:        "non-owner cannot share",
			principal:   stranger.UUID,
			fileUUID:    f.UUID,
			targetEmail: "bob@example.com",
			wantKind:    apperr.KindForbidden,
			wantMsg:     "you can only share files you own",
		},
		{
			name:        "unknown file",
			principal:   owner.UUID,
			fileUUID:    uuid.New(),
			targetEmail: "bob@example.com",
			wantKind:    apperr.KindNotFound,
			wantMsg:     "file not found",
		},
		{
			name:        "unknown target user",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: "ghost@example.com",
			wantKind:    apperr.KindNotFound,
			wantMsg:     "user not found",
		},
		{
			name:        "self-share rejected",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: owner.Email,
			wantKind:    apperr.KindConflict,
			wantMsg:     "cannot share a file with its owner",
		},
		{
			name:        "duplicate share rejected",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: "bob@example.com",
			shareErr:    fileDB.ErrAlreadyShared,
			wantKind:    apperr.KindConflict,
			wantMsg:     "file already shared with this user",
		},
		{
			name:        "file deleted concurrently",
			principal:   owner.UUID,
			fileUUID:    f.UUID,
			targetEmail: "bob@example.com",
			shareErr:    fileDB.ErrFileGone,
			wantKind:    apperr.KindNotFound,
			wantMsg:     "file not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			files := fileByUUID()
			files.CreateShareFunc = func(ctx context.Context, fileID domainFile.ID, targetID, grantedBy domainUser.ID, entry *domainActivity.Entry) error {
				require.Equal(t, f.ID, fileID)
				require.NotNil(t, entry)
				require.Equal(t, domainActivity.EventShare, entry.EventType)
				return tt.shareErr
			}

			fs := newFileService(&FakeBlobStore{}, files, userRepo(), &FakeActivityRepository{})
			msg, err := fs.Share(context.Background(), tt.principal, tt.fileUUID, tt.targetEmail)

			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Contains(t, msg, bob.FullName)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperr.Message(err))
		})
	}
}

func TestFileService_Unshare(t *testing.T) {
	owner, f := ownerAndFile()
	bob := &domainUser.User{ID: 3, UUID: uuid.New(), Email: "bob@example.com", FullName: "Bob Brown", Role: domainUser.RoleUser}

	userRepo := &FakeUserRepository{
		FetchByUUIDFunc: func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
			if id == owner.UUID {
				return owner, nil
			}
			return nil, nil
		},
		FetchByEmailFunc: func(ctx context.Context, email string) (*domainUser.User, error) {
			if email == bob.Email {
				return bob, nil
			}
			return nil, nil
		},
	}

	t.Run("revoking a non-existent share is not found", func(t *testing.T) {
		files := &FakeFileRepository{
			FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) { return f, nil },
			DeleteShareFunc: func(ctx context.Context, fileID domainFile.ID, targetID domainUser.ID, entry *domainActivity.Entry) error {
				return fileDB.ErrShareNotFound
			},
		}

		fs := newFileService(&FakeBlobStore{}, files, userRepo, &FakeActivityRepository{})
		_, err := fs.Unshare(context.Background(), owner.UUID, f.UUID, bob.Email)

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("owner revokes an active share", func(t *testing.T) {
		files := &FakeFileRepository{
			FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) { return f, nil },
			DeleteShareFunc: func(ctx context.Context, fileID domainFile.ID, targetID domainUser.ID, entry *domainActivity.Entry) error {
				require.Equal(t, bob.ID, targetID)
				return nil
			},
		}

		fs := newFileService(&FakeBlobStore{}, files, userRepo, &FakeActivityRepository{})
		msg, err := fs.Unshare(context.Background(), owner.UUID, f.UUID, bob.Email)

		require.NoError(t, err)
		assert.Contains(t, msg, bob.FullName)
	})
}

func TestFileService_Download(t *testing.T) {
	owner, f := ownerAndFile()
	bob := &domainUser.User{ID: 3, UUID: uuid.New(), Email: "bob@example.com", FullName: "Bob Brown", Role: domainUser.RoleUser}
	admin := &domainUser.User{ID: 4, UUID: uuid.New(), Email: "root@example.com", FullName: "Root", Role: domainUser.RoleAdmin}

	usersByUUID := map[domainUser.UUID]*domainUser.User{
		owner.UUID: owner,
		bob.UUID:   bob,
		admin.UUID: admin,
	}
	userRepo := &FakeUserRepository{
		FetchByUUIDFunc: func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
			return usersByUUID[id], nil
		},
	}

	tests := []struct {
		name      string
		principal domainUser.UUID
		hasShare  bool
		appendErr error
		wantKind  apperr.Kind
		wantOK    bool
	}{
		{name: "owner downloads", principal: owner.UUID, wantOK: true},
		{name: "shared user downloads", principal: bob.UUID, hasShare: true, wantOK: true},
		{name: "stranger denied", principal: bob.UUID, hasShare: false, wantKind: apperr.KindForbidden},
		// Admin role grants no read access without a share.
		{name: "admin without share denied", principal: admin.UUID, hasShare: false, wantKind: apperr.KindForbidden},
		{name: "lost audit entry never blocks the transfer", principal: owner.UUID, appendErr: errors.New("db down"), wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			files := &FakeFileRepository{
				FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) { return f, nil },
				HasShareFunc: func(ctx context.Context, fileID domainFile.ID, userID domainUser.ID) (bool, error) {
					return tt.hasShare, nil
				},
			}
			blob := &FakeBlobStore{
				PathFunc: func(key string) (string, error) {
					require.Equal(t, f.StorageKey, key)
					return "/var/blobs/" + key, nil
				},
			}
			acts := &FakeActivityRepository{
				AppendFunc: func(ctx context.Context, e *domainActivity.Entry) (*domainActivity.Entry, error) {
					if tt.appendErr != nil {
						return nil, tt.appendErr
					}
					return e, nil
				},
			}

			fs := newFileService(blob, files, userRepo, acts)
			got, path, err := fs.Download(context.Background(), tt.principal, f.UUID)

			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, f.UUID, got.UUID)
				assert.Equal(t, "/var/blobs/"+f.StorageKey, path)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestFileService_Delete(t *testing.T) {
	owner, f := ownerAndFile()
	bob := &domainUser.User{ID: 3, UUID: uuid.New(), Email: "bob@example.com", FullName: "Bob Brown", Role: domainUser.RoleUser}
	admin := &domainUser.User{ID: 4, UUID: uuid.New(), Email: "root@example.com", FullName: "Root", Role: domainUser.RoleAdmin}

	usersByUUID := map[domainUser.UUID]*domainUser.User{
		owner.UUID: owner,
		bob.UUID:   bob,
		admin.UUID: admin,
	}
	userRepo := &FakeUserRepository{
		FetchByUUIDFunc: func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) {
			return usersByUUID[id], nil
		},
	}

	tests := []struct {
		name      string
		principal domainUser.UUID
		hasShare  bool
		deleteErr error
		removeErr error
		wantKind  apperr.Kind
		wantOK    bool
	}{
		{name: "owner deletes", principal: owner.UUID, wantOK: true},
		{name: "admin deletes any file", principal: admin.UUID, wantOK: true},
		{name: "non-owner denied", principal: bob.UUID, wantKind: apperr.KindForbidden},
		// Read access via a share grants no delete permission.
		{name: "shared user denied", principal: bob.UUID, hasShare: true, wantKind: apperr.KindForbidden},
		{name: "already gone", principal: owner.UUID, deleteErr: fileDB.ErrFileNotFound, wantKind: apperr.KindNotFound},
		{name: "stubborn blob is leaked, caller still succeeds", principal: owner.UUID, removeErr: errors.New("EPERM"), wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			files := &FakeFileRepository{
				FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) { return f, nil },
				DeleteFunc: func(ctx context.Context, fileID domainFile.ID) error {
					require.Equal(t, f.ID, fileID)
					return tt.deleteErr
				},
			}
			blob := &FakeBlobStore{
				RemoveFunc: func(key string) error { return tt.removeErr },
			}

			fs := newFileService(blob, files, userRepo, &FakeActivityRepository{})
			msg, err := fs.Delete(context.Background(), tt.principal, f.UUID)

			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, "File deleted", msg)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
		})
	}
}

func TestFileService_DeleteEntryOmitsFileID(t *testing.T) {
	owner, f := ownerAndFile()

	userRepo := &FakeUserRepository{
		FetchByUUIDFunc: func(ctx context.Context, id domainUser.UUID) (*domainUser.User, error) { return owner, nil },
	}
	files := &FakeFileRepository{
		FetchByUUIDFunc: func(ctx context.Context, id domainFile.UUID) (*domainFile.File, error) { return f, nil },
		DeleteFunc:      func(ctx context.Context, fileID domainFile.ID) error { return nil },
	}
	blob := &FakeBlobStore{RemoveFunc: func(key string) error { return nil }}

	var logged *domainActivity.Entry
	acts := &FakeActivityRepository{
		AppendFunc: func(ctx context.Context, e *domainActivity.Entry) (*domainActivity.Entry, error) {
			logged = e
			return e, nil
		},
	}

	fs := newFileService(blob, files, userRepo, acts)
	_, err := fs.Delete(context.Background(), owner.UUID, f.UUID)
	require.NoError(t, err)

	require.NotNil(t, logged)
	assert.Equal(t, domainActivity.EventDelete, logged.EventType)
	assert.Nil(t, logged.FileID)
	assert.Contains(t, logged.Details, f.UUID.String())
	assert.Contains(t, logged.Details, f.FileName)
}
