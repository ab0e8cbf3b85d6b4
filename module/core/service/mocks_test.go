package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type mockAttendanceRepo struct {
	insertFn        func(ctx context.Context, a *domain.AttendanceInterval) error
	getOpenFn       func(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error)
	closeFn         func(ctx context.Context, id uuid.UUID, clockOut time.Time, comments string) error
	listRecentFn    func(ctx context.Context, limit int) ([]domain.AttendanceInterval, error)
	listByClockInFn func(ctx context.Context, query *domain.AttendanceQuery) ([]domain.AttendanceInterval, error)
}

func (m *mockAttendanceRepo) Insert(ctx context.Context, a *domain.AttendanceInterval) error {
	return m.insertFn(ctx, a)
}

func (m *mockAttendanceRepo) GetOpen(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error) {
	return m.getOpenFn(ctx, employeeID)
}

func (m *mockAttendanceRepo) Close(ctx context.Context, id uuid.UUID, clockOut time.Time, comments string) error {
	return m.closeFn(ctx, id, clockOut, comments)
}

func (m *mockAttendanceRepo) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceInterval, error) {
	return m.listRecentFn(ctx, limit)
}

func (m *mockAttendanceRepo) ListByClockIn(ctx context.Context, query *domain.AttendanceQuery) ([]domain.AttendanceInterval, error) {
	return m.listByClockInFn(ctx, query)
}

type mockProfileRepo struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	listByRoleFn func(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	updateFn     func(ctx context.Context, p *domain.Profile) error
	renameFn     func(ctx context.Context, id uuid.UUID, fullName string) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProfileRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	return m.listByRoleFn(ctx, role)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.updateFn(ctx, p)
}

func (m *mockProfileRepo) Rename(ctx context.Context, id uuid.UUID, fullName string) error {
	return m.renameFn(ctx, id, fullName)
}

func (m *mockProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockTaskRepo struct {
	insertFn         func(ctx context.Context, t *domain.Task) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	listByAssigneeFn func(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error)
	listFn           func(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	updateStatusFn   func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
}

func (m *mockTaskRepo) Insert(ctx context.Context, t *domain.Task) error {
	return m.insertFn(ctx, t)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockTaskRepo) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error) {
	return m.listByAssigneeFn(ctx, employeeID)
}

func (m *mockTaskRepo) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return m.listFn(ctx, filter)
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

type mockClientRepo struct {
	insertFn  func(ctx context.Context, c *domain.Client) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	listFn    func(ctx context.Context) ([]domain.Client, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockClientRepo) Insert(ctx context.Context, c *domain.Client) error {
	return m.insertFn(ctx, c)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	return m.listFn(ctx)
}

func (m *mockClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockMessageRepo struct {
	insertFn       func(ctx context.Context, m *domain.Message) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
}

func (m *mockMessageRepo) Insert(ctx context.Context, msg *domain.Message) error {
	return m.insertFn(ctx, msg)
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

type mockEventPublisher struct {
	attendance []*domain.AttendanceEvent
	messages   []*domain.Message
	err        error
}

func (m *mockEventPublisher) PublishAttendance(_ context.Context, event *domain.AttendanceEvent) error {
	m.attendance = append(m.attendance, event)
	return m.err
}

func (m *mockEventPublisher) PublishMessage(_ context.Context, msg *domain.Message) error {
	m.messages = append(m.messages, msg)
	return m.err
}

type stubGeofence struct {
	result domain.GeofenceResult
	err    error
}

func (s stubGeofence) Check(*domain.Coordinate) (domain.GeofenceResult, error) {
	return s.result, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
