package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type mockAdminRepo struct{ mock.Mock }

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	args := m.Called(ctx, id)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	admin, _ := args.Get(0).(*models.Admin)
	return admin, args.Error(1)
}

func (m *mockAdminRepo) Update(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLeagueRepo struct{ mock.Mock }

func (m *mockLeagueRepo) Create(ctx context.Context, exec repositories.SQLExecutor, league *models.League) error {
	return m.Called(ctx, exec, league).Error(0)
}

func (m *mockLeagueRepo) GetByID(ctx context.Context, id string) (*models.League, error) {
	args := m.Called(ctx, id)
	league, _ := args.Get(0).(*models.League)
	return league, args.Error(1)
}

func (m *mockLeagueRepo) GetByName(ctx context.Context, name string) (*models.League, error) {
	args := m.Called(ctx, name)
	league, _ := args.Get(0).(*models.League)
	return league, args.Error(1)
}

func (m *mockLeagueRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockLeagueRepo) List(ctx context.Context) ([]models.League, error) {
	args := m.Called(ctx)
	leagues, _ := args.Get(0).([]models.League)
	return leagues, args.Error(1)
}

func (m *mockLeagueRepo) ListByAdmin(ctx context.Context, adminID string) ([]models.League, error) {
	args := m.Called(ctx, adminID)
	leagues, _ := args.Get(0).([]models.League)
	return leagues, args.Error(1)
}

func (m *mockLeagueRepo) Update(ctx context.Context, exec repositories.SQLExecutor, league *models.League) error {
	return m.Called(ctx, exec, league).Error(0)
}

func (m *mockLeagueRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	return m.Called(ctx, exec, id).Error(0)
}

type mockTeamRepo struct{ mock.Mock }

func (m *mockTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	return m.Called(ctx, exec, team).Error(0)
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*models.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Team, error) {
	args := m.Called(ctx, exec, name)
	team, _ := args.Get(0).(*models.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]models.Team, error) {
	args := m.Called(ctx, leagueID)
	teams, _ := args.Get(0).([]models.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) Update(ctx context.Context, team *models.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *mockTeamRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTeamRepo) DeleteByLeague(ctx context.Context, exec repositories.SQLExecutor, leagueID string) (int64, error) {
	args := m.Called(ctx, exec, leagueID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTeamRepo) AssignLeague(ctx context.Context, exec repositories.SQLExecutor, teamID, leagueID string) error {
	return m.Called(ctx, exec, teamID, leagueID).Error(0)
}

func (m *mockTeamRepo) DeleteByLeagueExcept(ctx context.Context, exec repositories.SQLExecutor, leagueID string, keepIDs []string) (int64, error) {
	args := m.Called(ctx, exec, leagueID, keepIDs)
	return args.Get(0).(int64), args.Error(1)
}

type mockMatchRepo struct{ mock.Mock }

func (m *mockMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	return m.Called(ctx, exec, match).Error(0)
}

func (m *mockMatchRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []models.Match) error {
	return m.Called(ctx, exec, matches).Error(0)
}

func (m *mockMatchRepo) GetByID(ctx context.Context, id string) (*models.Match, error) {
	args := m.Called(ctx, id)
	match, _ := args.Get(0).(*models.Match)
	return match, args.Error(1)
}

func (m *mockMatchRepo) List(ctx context.Context) ([]models.Match, error) {
	args := m.Called(ctx)
	matches, _ := args.Get(0).([]models.Match)
	return matches, args.Error(1)
}

func (m *mockMatchRepo) ListByLeague(ctx context.Context, leagueID string) ([]models.Match, error) {
	args := m.Called(ctx, leagueID)
	matches, _ := args.Get(0).([]models.Match)
	return matches, args.Error(1)
}

func (m *mockMatchRepo) Update(ctx context.Context, match *models.Match) error {
	return m.Called(ctx, match).Error(0)
}

func (m *mockMatchRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMatchRepo) DeleteByLeague(ctx context.Context, exec repositories.SQLExecutor, leagueID string) (int64, error) {
	args := m.Called(ctx, exec, leagueID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	args := m.Called(ctx, key, contentType, reader)
	result, _ := args.Get(0).(*storage.UploadResult)
	return result, args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type mockOTPSender struct{ mock.Mock }

func (m *mockOTPSender) SendOTPEmail(to, name, otp string) error {
	return m.Called(to, name, otp).Error(0)
}

type recordingHub struct {
	mu       sync.Mutex
	rooms    []string
	messages []interface{}
}

func (h *recordingHub) BroadcastToRoom(roomID string, message interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rooms = append(h.rooms, roomID)
	h.messages = append(h.messages, message)
}
