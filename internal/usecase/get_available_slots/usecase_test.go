package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	userRepo "github.com/mentorhub/MH-SessionService/internal/infra/storage/user"
	"github.com/mentorhub/MH-SessionService/pkg/types"
)

// Фейки зависимостей

type fakeSessionRepo struct {
	sessions []*domain.Session
	err      error
}

func (f *fakeSessionRepo) GetActiveByMentorBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Session, error) {
	return f.sessions, f.err
}

type fakeAvailabilityRepo struct {
	templates []*domain.AvailabilityTemplate
	err       error
}

func (f *fakeAvailabilityRepo) GetActiveByMentorAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityTemplate, error) {
	return f.templates, f.err
}

type fakeUserRepo struct {
	mentor *domain.User
	err    error
}

func (f *fakeUserRepo) GetMentorByID(_ context.Context, _ int64) (*domain.User, error) {
	return f.mentor, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	sessions *fakeSessionRepo,
	availability *fakeAvailabilityRepo,
	users *fakeUserRepo,
	now time.Time,
) *UseCase {
	return &UseCase{
		sessionRepo:      sessions,
		availabilityRepo: availability,
		userRepo:         users,
		timeProvider:     &fixedTimeProvider{now: now},
		logger:           nopLogger{},
	}
}

func template(start, end types.TimeString) *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		ID:        1,
		MentorID:  7,
		DayOfWeek: 1, // понедельник
		StartTime: start,
		EndTime:   end,
		Timezone:  "UTC",
		IsActive:  true,
	}
}

// 2026-03-16 - понедельник
var (
	monday  = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	longAgo = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

func TestExecute_GeneratesSlotsWithinWindow(t *testing.T) {
	// Окно 09:00-17:00, длительность 60: последний слот 16:00-17:00
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "17:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "UTC", resp.Timezone)
	require.Len(t, resp.Slots, 15) // 09:00, 09:30 ... 16:00

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, types.TimeString("16:00"), last.StartTime)
	assert.Equal(t, types.TimeString("17:00"), last.EndTime)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s", slot.StartTime)
	}
}

func TestExecute_SlotMustFitEntirely(t *testing.T) {
	// Окно 09:00-10:00, длительность 90: ни один кандидат не помещается
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "10:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 90})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MarksOverlappingSlotsUnavailable(t *testing.T) {
	// Сессия 10:00-11:00 блокирует слоты 09:30, 10:00 и 10:30,
	// граничащие 09:00 и 11:00 остаются доступными
	booked := &domain.Session{
		MentorID:        7,
		ScheduledAt:     time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}

	uc := newTestUseCase(
		&fakeSessionRepo{sessions: []*domain.Session{booked}},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "13:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	availability := make(map[types.TimeString]bool)
	for _, slot := range resp.Slots {
		availability[slot.StartTime] = slot.Available
	}

	assert.True(t, availability["09:00"])
	assert.False(t, availability["09:30"])
	assert.False(t, availability["10:00"])
	assert.False(t, availability["10:30"])
	assert.True(t, availability["11:00"])
}

func TestExecute_CancelledSessionsDoNotBlock(t *testing.T) {
	cancelled := &domain.Session{
		MentorID:        7,
		ScheduledAt:     time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	}

	uc := newTestUseCase(
		&fakeSessionRepo{sessions: []*domain.Session{cancelled}},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "12:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s", slot.StartTime)
	}
}

func TestExecute_PastSlotsUnavailable(t *testing.T) {
	// Сейчас 10:15: слоты с началом не позже 10:15 недоступны
	now := time.Date(2026, 3, 16, 10, 15, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "13:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		if startMin <= 10*60+15 {
			assert.False(t, slot.Available, "slot %s must be in the past", slot.StartTime)
		} else {
			assert.True(t, slot.Available, "slot %s", slot.StartTime)
		}
	}
}

func TestExecute_NoTemplatesForDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, StatusMentorNotAvailable, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OvernightWindowYieldsNoSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("22:00", "02:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OverlappingTemplatesDeduplicated(t *testing.T) {
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{
			template("09:00", "12:00"),
			template("10:00", "14:00"),
		}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday, DurationMinutes: 60})
	require.NoError(t, err)

	seen := make(map[types.TimeString]int)
	for _, slot := range resp.Slots {
		seen[slot.StartTime]++
	}
	for start, count := range seen {
		assert.Equal(t, 1, count, "slot %s duplicated", start)
	}

	// Слоты упорядочены по началу
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.IsBefore(resp.Slots[i].StartTime))
	}
}

func TestExecute_DefaultDuration(t *testing.T) {
	// Без длительности используется 60 минут: окно 09:00-10:00 даёт один слот
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{templates: []*domain.AvailabilityTemplate{template("09:00", "10:00")}},
		&fakeUserRepo{mentor: &domain.User{ID: 7, Role: domain.RoleMentor}},
		longAgo,
	)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
}

func TestExecute_MentorNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeSessionRepo{},
		&fakeAvailabilityRepo{},
		&fakeUserRepo{err: userRepo.ErrUserNotFound},
		longAgo,
	)

	_, err := uc.Execute(context.Background(), &Request{MentorID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrMentorNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSessionRepo{}, &fakeAvailabilityRepo{}, &fakeUserRepo{}, longAgo)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero mentor id", req: &Request{Date: monday}},
		{name: "missing date", req: &Request{MentorID: 7}},
		{name: "duration below minimum", req: &Request{MentorID: 7, Date: monday, DurationMinutes: 10}},
		{name: "duration above maximum", req: &Request{MentorID: 7, Date: monday, DurationMinutes: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
