package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/database"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/repository"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type memoryStorage struct {
	mu      sync.Mutex
	saved   map[string][]byte
	saveErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{saved: make(map[string][]byte)}
}

func (m *memoryStorage) GenerateUniqueFilename(originalName string) string {
	return storage.UniqueFilename(originalName)
}

func (m *memoryStorage) URL(folder, name string) (string, error) {
	return "/" + folder + "/" + name, nil
}

func (m *memoryStorage) Save(_ context.Context, folder, name string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved["/"+folder+"/"+name] = data
	return nil
}

func (m *memoryStorage) has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[url]
	return ok
}

type testEnv struct {
	db            *gorm.DB
	files         *memoryStorage
	validate      *validator.Validate
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenRepository
	messages      repository.MessageRepository
	replies       repository.ReplyRepository
	reactions     repository.ReactionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:            db,
		files:         newMemoryStorage(),
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		users:         repository.NewUserRepository(db),
		refreshTokens: repository.NewRefreshTokenRepository(db),
		messages:      repository.NewMessageRepository(db),
		replies:       repository.NewReplyRepository(db),
		reactions:     repository.NewReactionRepository(db),
	}

	_, err = env.reactions.SeedKinds(context.Background(), models.DefaultReactionTypes)
	require.NoError(t, err)
	return env
}

func (e *testEnv) messageService() MessageService {
	return NewMessageService(e.messages, e.users, e.files, e.validate, zerolog.Nop())
}

func (e *testEnv) replyService() ReplyService {
	return NewReplyService(e.messages, e.replies, e.validate, zerolog.Nop())
}

func (e *testEnv) reactionService() ReactionService {
	return NewReactionService(e.reactions, e.messages, e.users, nil, 0, e.validate, zerolog.Nop())
}

func (e *testEnv) createUser(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{
		UserName:     name,
		Email:        name + "@example.com",
		Link:         name,
		Name:         name,
		Gender:       models.GenderFemale,
		PasswordHash: "hash",
	}
	require.NoError(t, e.users.Create(context.Background(), &user))
	return user
}

func (e *testEnv) reactionKind(t *testing.T, reactionType string) models.Reaction {
	t.Helper()
	var kind models.Reaction
	require.NoError(t, e.db.Where("reaction_type = ?", reactionType).First(&kind).Error)
	return kind
}

func requireServiceError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	got, ok := Message(err)
	require.True(t, ok)
	require.Equal(t, message, got)
}

func requireValidationErrors(t *testing.T, err error) {
	t.Helper()
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
}

func boolPtr(v bool) *bool {
	return &v
}
