package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	availabilitystorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/availability"
	userstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
	"github.com/mentorhub/MH-SessionService/internal/service/availability/models"
	"github.com/mentorhub/MH-SessionService/pkg/types"
)

// Фейки зависимостей

type fakeAvailabilityRepo struct {
	created     *domain.AvailabilityTemplate
	template    *domain.AvailabilityTemplate
	getErr      error
	active      []*domain.AvailabilityTemplate
	deactivated []int64
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	t.ID = 11
	f.created = t
	return t, nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityTemplate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.template, nil
}

func (f *fakeAvailabilityRepo) GetActiveByMentor(_ context.Context, _ int64) ([]*domain.AvailabilityTemplate, error) {
	return f.active, nil
}

func (f *fakeAvailabilityRepo) Deactivate(_ context.Context, id int64) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeUserRepo struct {
	mentors map[int64]*domain.User
}

func (f *fakeUserRepo) GetMentorByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.mentors[id]; ok {
		return u, nil
	}
	return nil, userstorage.ErrUserNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeAvailabilityRepo) *Service {
	users := &fakeUserRepo{mentors: map[int64]*domain.User{
		1: {ID: 1, Name: "Mentor", Role: domain.RoleMentor},
	}}
	return NewService(repo, users, nopLogger{})
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func validCreateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		UserID:    1,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Berlin",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, int64(1), resp.MentorID)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "17:00", resp.EndTime)
	assert.True(t, resp.IsActive)
	require.NotNil(t, repo.created)
	assert.True(t, repo.created.IsActive)
}

func TestCreate_MentorNotFound(t *testing.T) {
	svc := newTestService(&fakeAvailabilityRepo{})

	req := validCreateRequest()
	req.UserID = 77

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&fakeAvailabilityRepo{})

	tests := []struct {
		name   string
		mutate func(*models.CreateTemplateRequest)
	}{
		{name: "negative day", mutate: func(r *models.CreateTemplateRequest) { r.DayOfWeek = -1 }},
		{name: "day above saturday", mutate: func(r *models.CreateTemplateRequest) { r.DayOfWeek = 7 }},
		{name: "malformed start time", mutate: func(r *models.CreateTemplateRequest) { r.StartTime = "9am" }},
		{name: "malformed end time", mutate: func(r *models.CreateTemplateRequest) { r.EndTime = "25:00" }},
		{name: "end before start", mutate: func(r *models.CreateTemplateRequest) { r.StartTime = "17:00"; r.EndTime = "09:00" }},
		{name: "degenerate window", mutate: func(r *models.CreateTemplateRequest) { r.EndTime = r.StartTime }},
		{name: "unknown timezone", mutate: func(r *models.CreateTemplateRequest) { r.Timezone = "Mars/Olympus" }},
		{name: "empty timezone", mutate: func(r *models.CreateTemplateRequest) { r.Timezone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetMentorTemplates(t *testing.T) {
	repo := &fakeAvailabilityRepo{active: []*domain.AvailabilityTemplate{
		{ID: 3, MentorID: 1, DayOfWeek: 2, StartTime: mustTime(t, "10:00"), EndTime: mustTime(t, "12:00"), Timezone: "UTC", IsActive: true},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetMentorTemplates(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, "10:00", resp.Templates[0].StartTime)

	_, err = svc.GetMentorTemplates(context.Background(), 77)
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestDeactivate_OwnerOnly(t *testing.T) {
	repo := &fakeAvailabilityRepo{template: &domain.AvailabilityTemplate{ID: 3, MentorID: 1}}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deactivated)

	err = svc.Deactivate(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deactivated)
}

func TestDeactivate_NotFound(t *testing.T) {
	repo := &fakeAvailabilityRepo{getErr: availabilitystorage.ErrTemplateNotFound}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
