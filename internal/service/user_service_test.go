package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
)

// ============================================================================
// Моки
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByFirebaseUID(firebaseUID string) (*entity.User, error) {
	args := m.Called(firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByFirebaseUIDForUpdate(tx *gorm.DB, firebaseUID string) (*entity.User, error) {
	args := m.Called(tx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(firebaseUID string, updates map[string]interface{}) error {
	args := m.Called(firebaseUID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) ApplyScore(firebaseUID string, score int64) (*repository.UserStats, error) {
	args := m.Called(firebaseUID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

func (m *MockUserRepository) UpdateAggregates(tx *gorm.DB, user *entity.User) error {
	args := m.Called(tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(firebaseUID string) error {
	args := m.Called(firebaseUID)
	return args.Error(0)
}

func (m *MockUserRepository) GetRanking(limit int) ([]entity.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// ============================================================================
// SyncUser
// ============================================================================

func TestUserService_SyncUser_CreatesNewUser(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("GetByFirebaseUID", "fb-1").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil).Once()

	// Act
	user, created, err := svc.SyncUser("fb-1", "Ada", "Lovelace", "ada@example.com", "1990-12-10")

	// Assert
	require.NoError(t, err)
	assert.True(t, created, "Первая синхронизация должна создавать пользователя")
	assert.NotEmpty(t, user.ID, "Новому пользователю должен быть присвоен внутренний id")
	assert.Equal(t, "fb-1", user.FirebaseUID)
	assert.Equal(t, entity.DefaultAvatar, user.AvatarURL, "Новый пользователь получает аватар по умолчанию")
	assert.Zero(t, user.TotalScore, "Счётчики нового пользователя должны быть нулевыми")
	assert.Zero(t, user.GamesPlayed)
	assert.Zero(t, user.BestScore)
	assert.Zero(t, user.CurrentStreak)
	repo.AssertExpectations(t)
}

func TestUserService_SyncUser_IsIdempotent(t *testing.T) {
	// Arrange: пользователь уже существует
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	existing := &entity.User{
		ID:          "uuid-1",
		FirebaseUID: "fb-1",
		FirstName:   "Old",
		Email:       "old@example.com",
	}
	repo.On("GetByFirebaseUID", "fb-1").Return(existing, nil).Twice()

	// Act: повторная синхронизация с другими профильными полями
	first, createdFirst, err1 := svc.SyncUser("fb-1", "New", "Name", "new@example.com", "2000-01-01")
	second, createdSecond, err2 := svc.SyncUser("fb-1", "New", "Name", "new@example.com", "2000-01-01")

	// Assert: оба вызова возвращают одну и ту же строку, Create не вызывается,
	// сохранённые поля не обновляются
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.False(t, createdFirst)
	assert.False(t, createdSecond)
	assert.Equal(t, first.ID, second.ID, "Повторная синхронизация должна возвращать тот же внутренний id")
	assert.Equal(t, "Old", first.FirstName, "Повторная синхронизация не обновляет сохранённые поля")
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_SyncUser_MissingFields(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	tests := []struct {
		name                                            string
		firebaseUID, firstName, lastName, email, bDate  string
	}{
		{"missing firebase_uid", "", "Ada", "Lovelace", "ada@example.com", "1990-12-10"},
		{"missing first_name", "fb-1", "", "Lovelace", "ada@example.com", "1990-12-10"},
		{"missing last_name", "fb-1", "Ada", "", "ada@example.com", "1990-12-10"},
		{"missing email", "fb-1", "Ada", "Lovelace", "", "1990-12-10"},
		{"missing birth_date", "fb-1", "Ada", "Lovelace", "ada@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SyncUser(tt.firebaseUID, tt.firstName, tt.lastName, tt.email, tt.bDate)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_SyncUser_NormalizesBirthDate(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("GetByFirebaseUID", "fb-1").Return(nil, apperrors.ErrNotFound).Once()

	var captured *entity.User
	repo.On("Create", mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { captured = args.Get(0).(*entity.User) }).
		Return(nil).Once()

	// Act: клиент прислал ISO-строку с временем
	_, _, err := svc.SyncUser("fb-1", "Ada", "Lovelace", "ada@example.com", "1990-12-10T15:04:05.000Z")

	// Assert: сохраняется только дата
	require.NoError(t, err)
	require.NotNil(t, captured)
	expected, _ := time.Parse("2006-01-02", "1990-12-10")
	assert.Equal(t, expected, captured.BirthDate)
}

func TestUserService_SyncUser_ConcurrentCreateLosesRace(t *testing.T) {
	// Arrange: между проверкой и вставкой другой процесс создал пользователя
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	winner := &entity.User{ID: "uuid-winner", FirebaseUID: "fb-1"}
	repo.On("GetByFirebaseUID", "fb-1").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("Create", mock.AnythingOfType("*entity.User")).Return(apperrors.ErrConflict).Once()
	repo.On("GetByFirebaseUID", "fb-1").Return(winner, nil).Once()

	// Act
	user, created, err := svc.SyncUser("fb-1", "Ada", "Lovelace", "ada@example.com", "1990-12-10")

	// Assert: проигравший возвращает строку победителя
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "uuid-winner", user.ID)
	repo.AssertExpectations(t)
}

// ============================================================================
// UpdateProfile
// ============================================================================

func TestUserService_UpdateProfile_WithoutAvatarKeepsExisting(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("UpdateProfile", "fb-1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasAvatar := updates["avatar_url"]
		return !hasAvatar
	})).Return(nil).Once()
	repo.On("GetByFirebaseUID", "fb-1").Return(&entity.User{FirebaseUID: "fb-1", AvatarURL: "avatar3"}, nil).Once()

	// Act: avatar_url не передан
	user, err := svc.UpdateProfile("fb-1", "Ada", "Lovelace", "ada@example.com", "1990-12-10", nil)

	// Assert: прежний аватар не тронут
	require.NoError(t, err)
	assert.Equal(t, "avatar3", user.AvatarURL)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_WithAvatarOverwrites(t *testing.T) {
	// Arrange
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	avatar := "avatar7"
	repo.On("UpdateProfile", "fb-1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["avatar_url"] == "avatar7"
	})).Return(nil).Once()
	repo.On("GetByFirebaseUID", "fb-1").Return(&entity.User{FirebaseUID: "fb-1", AvatarURL: "avatar7"}, nil).Once()

	// Act
	user, err := svc.UpdateProfile("fb-1", "Ada", "Lovelace", "ada@example.com", "1990-12-10", &avatar)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "avatar7", user.AvatarURL)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("UpdateProfile", "ghost", mock.Anything).Return(apperrors.ErrNotFound).Once()

	_, err := svc.UpdateProfile("ghost", "Ada", "Lovelace", "ada@example.com", "1990-12-10", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserService_UpdateProfile_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("UpdateProfile", "fb-1", mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := svc.UpdateProfile("fb-1", "Ada", "Lovelace", "taken@example.com", "1990-12-10", nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserService_UpdateProfile_InvalidBirthDate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	_, err := svc.UpdateProfile("fb-1", "Ada", "Lovelace", "ada@example.com", "not-a-date", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

// ============================================================================
// UpdateStats / DeleteUser
// ============================================================================

func TestUserService_UpdateStats_ReturnsFreshAggregates(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("ApplyScore", "fb-1", int64(30)).
		Return(&repository.UserStats{TotalScore: 130, GamesPlayed: 5, BestScore: 60}, nil).Once()

	stats, err := svc.UpdateStats("fb-1", 30)

	require.NoError(t, err)
	assert.Equal(t, int64(130), stats.TotalScore)
	assert.Equal(t, int64(5), stats.GamesPlayed)
	assert.Equal(t, int64(60), stats.BestScore)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateStats_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("ApplyScore", "ghost", int64(10)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.UpdateStats("ghost", 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("Delete", "ghost").Return(apperrors.ErrNotFound).Once()

	err := svc.DeleteUser("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// GetRanking
// ============================================================================

func TestUserService_GetRanking_OrdersAndRanks(t *testing.T) {
	// Arrange: репозиторий отдаёт строки уже отсортированными по total_score DESC
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("GetRanking", 3).Return([]entity.User{
		{FirebaseUID: "fb-d", TotalScore: 90},
		{FirebaseUID: "fb-a", TotalScore: 50},
		{FirebaseUID: "fb-c", TotalScore: 30},
	}, nil).Once()

	// Act
	ranking, err := svc.GetRanking(3)

	// Assert
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, []int64{90, 50, 30}, []int64{ranking[0].TotalScore, ranking[1].TotalScore, ranking[2].TotalScore})
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, 2, ranking[1].Rank)
	assert.Equal(t, 3, ranking[2].Rank)
	repo.AssertExpectations(t)
}

func TestUserService_GetRanking_DefaultsAndClampsLimit(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("GetRanking", 10).Return([]entity.User{}, nil).Once()
	repo.On("GetRanking", 100).Return([]entity.User{}, nil).Once()

	_, err := svc.GetRanking(0)
	require.NoError(t, err)
	_, err = svc.GetRanking(5000)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestUserService_GetRanking_RepositoryError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repoErr := errors.New("connection refused")
	repo.On("GetRanking", 10).Return(nil, repoErr).Once()

	_, err := svc.GetRanking(10)
	assert.ErrorIs(t, err, repoErr)
}
