package run_reminder_sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
)

// Фейки зависимостей

type windowQuery struct {
	from time.Time
	to   time.Time
}

type fakeSessionRepo struct {
	// sessions по началу окна: Bounds детерминированы от now
	byWindowStart map[time.Time][]*domain.Session
	errForStart   map[time.Time]error
	queries       []windowQuery
}

func (f *fakeSessionRepo) GetScheduledBetween(_ context.Context, from, to time.Time) ([]*domain.Session, error) {
	f.queries = append(f.queries, windowQuery{from: from, to: to})
	if err, ok := f.errForStart[from]; ok {
		return nil, err
	}
	return f.byWindowStart[from], nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
	err   map[int64]error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if err, ok := f.err[id]; ok {
		return nil, err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("unexpected user lookup")
}

type sentMail struct {
	to       string
	template mailer.Template
	data     map[string]interface{}
}

type fakeMailer struct {
	sent   []sentMail
	failTo map[string]error
}

func (f *fakeMailer) Send(_ context.Context, to string, template mailer.Template, data map[string]interface{}) error {
	if err, ok := f.failTo[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{to: to, template: template, data: data})
	return nil
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

var testNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

func defaultUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Email: "mentor@example.com", Name: "Mentor"},
		2: {ID: 2, Email: "student@example.com", Name: "Student"},
	}}
}

func session(id int64, scheduledAt time.Time) *domain.Session {
	return &domain.Session{
		ID:              id,
		MentorID:        1,
		StudentID:       2,
		ScheduledAt:     scheduledAt,
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		Topic:           "Weekly check-in",
	}
}

func TestExecute_QueriesBothWindows(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := NewUseCase(repo, defaultUsers(), &fakeMailer{}, &fixedTimeProvider{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)

	require.Len(t, repo.queries, 2)
	// Окно 24h: [now+23h, now+25h)
	assert.Equal(t, testNow.Add(23*time.Hour), repo.queries[0].from)
	assert.Equal(t, testNow.Add(25*time.Hour), repo.queries[0].to)
	// Окно 1h: [now+30m, now+90m)
	assert.Equal(t, testNow.Add(30*time.Minute), repo.queries[1].from)
	assert.Equal(t, testNow.Add(90*time.Minute), repo.queries[1].to)

	assert.Equal(t, domain.Reminder24h, resp.Windows[0].Type)
	assert.Equal(t, domain.Reminder1h, resp.Windows[1].Type)
}

func TestExecute_RemindsBothParticipants(t *testing.T) {
	repo := &fakeSessionRepo{byWindowStart: map[time.Time][]*domain.Session{
		testNow.Add(30 * time.Minute): {session(7, testNow.Add(time.Hour))},
	}}
	sender := &fakeMailer{}
	uc := NewUseCase(repo, defaultUsers(), sender, &fixedTimeProvider{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Windows[0].SessionsFound)
	assert.Equal(t, 1, resp.Windows[1].SessionsFound)
	assert.Equal(t, 2, resp.Windows[1].EmailsSent)
	assert.Equal(t, 0, resp.Windows[1].EmailsFailed)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "student@example.com", sender.sent[0].to)
	assert.Equal(t, "mentor@example.com", sender.sent[1].to)
	for _, m := range sender.sent {
		assert.Equal(t, mailer.TemplateSessionReminder, m.template)
		assert.Equal(t, "1h", m.data["reminderType"])
	}
}

func TestExecute_PerSessionFailureIsolation(t *testing.T) {
	users := defaultUsers()
	users.users[3] = &domain.User{ID: 3, Email: "other@example.com", Name: "Other"}

	broken := session(8, testNow.Add(24*time.Hour))
	broken.StudentID = 3

	repo := &fakeSessionRepo{byWindowStart: map[time.Time][]*domain.Session{
		testNow.Add(23 * time.Hour): {broken, session(9, testNow.Add(24*time.Hour))},
	}}
	sender := &fakeMailer{failTo: map[string]error{"other@example.com": mailer.ErrSendFailed}}
	uc := NewUseCase(repo, users, sender, &fixedTimeProvider{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Сбой письма одной сессии не мешает соседней
	assert.Equal(t, 2, resp.Windows[0].SessionsFound)
	assert.Equal(t, 3, resp.Windows[0].EmailsSent)
	assert.Equal(t, 1, resp.Windows[0].EmailsFailed)
}

func TestExecute_UserLookupFailureCountsBothEmails(t *testing.T) {
	repo := &fakeSessionRepo{byWindowStart: map[time.Time][]*domain.Session{
		testNow.Add(23 * time.Hour): {session(10, testNow.Add(24*time.Hour))},
	}}
	users := defaultUsers()
	users.err = map[int64]error{1: errors.New("db down")}

	sender := &fakeMailer{}
	uc := NewUseCase(repo, users, sender, &fixedTimeProvider{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Windows[0].SessionsFound)
	assert.Equal(t, 0, resp.Windows[0].EmailsSent)
	assert.Equal(t, 2, resp.Windows[0].EmailsFailed)
	assert.Empty(t, sender.sent)
}

func TestExecute_WindowQueryFailureDoesNotAbortRun(t *testing.T) {
	repo := &fakeSessionRepo{
		errForStart: map[time.Time]error{testNow.Add(23 * time.Hour): errors.New("db down")},
		byWindowStart: map[time.Time][]*domain.Session{
			testNow.Add(30 * time.Minute): {session(11, testNow.Add(time.Hour))},
		},
	}
	sender := &fakeMailer{}
	uc := NewUseCase(repo, defaultUsers(), sender, &fixedTimeProvider{now: testNow}, nopLogger{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)

	assert.Equal(t, 0, resp.Windows[0].SessionsFound)
	assert.Equal(t, 1, resp.Windows[1].SessionsFound)
	assert.Equal(t, 2, resp.Windows[1].EmailsSent)
}
