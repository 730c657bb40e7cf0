package create_session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	connectionstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/connection"
	sessionstorage "github.com/mentorhub/MH-SessionService/internal/infra/storage/session"
	"github.com/mentorhub/MH-SessionService/internal/integrations/mailer"
	"github.com/mentorhub/MH-SessionService/internal/integrations/videorooms"
)

// Фейки зависимостей

type fakeSessionRepo struct {
	created        *domain.Session
	createErr      error
	overlapping    []*domain.Session
	quotaCount     int
	lastWithMentor *time.Time
	meetingURL     string
	setURLErr      error
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = 42
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.created = s
	return s, nil
}

func (f *fakeSessionRepo) GetActiveByMentorBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Session, error) {
	return f.overlapping, nil
}

func (f *fakeSessionRepo) CountQuotaSessionsInPeriod(_ context.Context, _ int64, _, _ time.Time) (int, error) {
	return f.quotaCount, nil
}

func (f *fakeSessionRepo) GetLastCreatedAtWithMentor(_ context.Context, _, _ int64) (*time.Time, error) {
	return f.lastWithMentor, nil
}

func (f *fakeSessionRepo) SetMeetingURL(_ context.Context, _ int64, url string) error {
	if f.setURLErr != nil {
		return f.setURLErr
	}
	f.meetingURL = url
	return nil
}

type fakeConnectionRepo struct {
	conn *domain.Connection
	err  error
}

func (f *fakeConnectionRepo) GetByMentorAndStudent(_ context.Context, _, _ int64) (*domain.Connection, error) {
	return f.conn, f.err
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("unexpected user lookup")
}

func (f *fakeUserRepo) GetMentorByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.GetByID(ctx, id)
}

type fakeVideoRooms struct {
	room    *videorooms.Room
	err     error
	created int
}

func (f *fakeVideoRooms) EnsureRoom(_ context.Context, name string, _ time.Time, _ int) (*videorooms.Room, error) {
	f.created++
	if f.err != nil {
		return nil, f.err
	}
	if f.room != nil {
		return f.room, nil
	}
	return &videorooms.Room{Name: name, URL: "https://rooms.example/" + name}, nil
}

type sentMail struct {
	to       string
	template mailer.Template
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to string, template mailer.Template, _ map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, template: template})
	return nil
}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
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

// Тестовая сборка

var testNow = time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc          *UseCase
	sessionRepo *fakeSessionRepo
	connRepo    *fakeConnectionRepo
	videoRooms  *fakeVideoRooms
	mailer      *fakeMailer
	txMgr       *passthroughTxManager
}

func newFixture() *fixture {
	f := &fixture{
		sessionRepo: &fakeSessionRepo{},
		connRepo: &fakeConnectionRepo{
			conn: &domain.Connection{MentorID: 1, StudentID: 2, Status: domain.ConnectionAccepted},
		},
		videoRooms: &fakeVideoRooms{},
		mailer:     &fakeMailer{},
		txMgr:      &passthroughTxManager{},
	}

	users := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Email: "mentor@example.com", Name: "Mentor", Role: domain.RoleMentor},
		2: {ID: 2, Email: "student@example.com", Name: "Student", Role: domain.RoleStudent, SubscriptionTier: domain.TierFree},
	}}

	f.uc = NewUseCase(
		f.sessionRepo,
		f.connRepo,
		users,
		f.videoRooms,
		f.mailer,
		f.txMgr,
		&fixedTimeProvider{now: testNow},
		nopLogger{},
	)
	return f
}

func validRequest() *Request {
	return &Request{
		StudentID:       2,
		MentorID:        1,
		ScheduledAt:     testNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		Topic:           "Go interfaces deep dive",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Session)
	assert.Equal(t, int64(42), resp.Session.ID)
	assert.Equal(t, domain.StatusScheduled, resp.Session.Status)
	assert.Equal(t, 1, f.txMgr.calls)

	// Видеокомната создана и URL сохранён
	assert.Equal(t, 1, f.videoRooms.created)
	require.NotNil(t, resp.Session.MeetingURL)
	assert.Equal(t, "https://rooms.example/mh-session-42", *resp.Session.MeetingURL)
	assert.Equal(t, *resp.Session.MeetingURL, f.sessionRepo.meetingURL)

	// Оба участника уведомлены
	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "student@example.com", f.mailer.sent[0].to)
	assert.Equal(t, mailer.TemplateSessionBookedStudent, f.mailer.sent[0].template)
	assert.Equal(t, "mentor@example.com", f.mailer.sent[1].to)
	assert.Equal(t, mailer.TemplateSessionBookedMentor, f.mailer.sent[1].template)
}

func TestExecute_DefaultDuration(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.DurationMinutes = 0

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.Session.DurationMinutes)
}

func TestExecute_NoAcceptedConnection(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeConnectionRepo
	}{
		{
			name: "connection missing",
			repo: &fakeConnectionRepo{err: connectionstorage.ErrConnectionNotFound},
		},
		{
			name: "connection pending",
			repo: &fakeConnectionRepo{conn: &domain.Connection{MentorID: 1, StudentID: 2, Status: domain.ConnectionPending}},
		},
		{
			name: "connection ended",
			repo: &fakeConnectionRepo{conn: &domain.Connection{MentorID: 1, StudentID: 2, Status: domain.ConnectionEnded}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			*f.connRepo = *tt.repo

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrNoAcceptedConnection)
			assert.Nil(t, f.sessionRepo.created)
			assert.Empty(t, f.mailer.sent)
		})
	}
}

func TestExecute_GuardrailRejectionHasNoSideEffects(t *testing.T) {
	f := newFixture()
	f.sessionRepo.quotaCount = domain.FreeTierMonthlySessions

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrGuardrailRejected)

	var guardrailErr *GuardrailError
	require.ErrorAs(t, err, &guardrailErr)
	assert.Equal(t, ReasonMonthlyQuotaExceeded, guardrailErr.Rejection.Reason)

	assert.Nil(t, f.sessionRepo.created)
	assert.Zero(t, f.videoRooms.created)
	assert.Empty(t, f.mailer.sent)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()
	f.sessionRepo.overlapping = []*domain.Session{{
		MentorID:        1,
		ScheduledAt:     testNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, f.sessionRepo.created)
}

func TestExecute_OverlapConstraintMapsToConflict(t *testing.T) {
	// Гонка, которую поймал exclusion constraint в БД
	f := newFixture()
	f.sessionRepo.createErr = sessionstorage.ErrOverlapConstraint

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_VideoRoomFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.videoRooms.err = videorooms.ErrInternal

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Nil(t, resp.Session.MeetingURL)
	// Письма отправляются независимо от видеокомнаты
	assert.Len(t, f.mailer.sent, 2)
}

func TestExecute_MailerFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.mailer.err = mailer.ErrSendFailed

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Session)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing topic", mutate: func(r *Request) { r.Topic = "  " }},
		{name: "self booking", mutate: func(r *Request) { r.MentorID = r.StudentID }},
		{name: "zero scheduledAt", mutate: func(r *Request) { r.ScheduledAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
