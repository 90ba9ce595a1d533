package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/field_booking/internal/apperr"
	"github.com/Freeeeeet/field_booking/internal/model"
	"github.com/Freeeeeet/field_booking/internal/schedule"
)

// Memory хранилище в памяти с той же семантикой, что и у pgx-репозиториев.
// Атомарность CreateIfNoConflict обеспечивается мьютексом вместо
// транзакционного лока. Используется в тестах.
type Memory struct {
	mu           sync.Mutex
	nextID       int64
	users        map[int64]*model.User
	fields       map[int64]*model.Field
	reservations map[int64]*model.Reservation
}

func NewMemory() *Memory {
	return &Memory{
		nextID:       1,
		users:        make(map[int64]*model.User),
		fields:       make(map[int64]*model.Field),
		reservations: make(map[int64]*model.Reservation),
	}
}

func (m *Memory) nextIDLocked() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperr.Conflict("email already registered")
		}
	}

	user.ID = m.nextIDLocked()
	user.CreatedAt = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *Memory) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (m *Memory) List(ctx context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*model.User
	for _, user := range m.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Fields возвращает view хранилища с методами для площадок.
// Имена методов пересекаются с пользовательскими, поэтому площадки и
// пользователи разнесены по отдельным view.
func (m *Memory) Fields() *MemoryFields {
	return &MemoryFields{m: m}
}

// Reservations возвращает view хранилища с методами для броней
func (m *Memory) Reservations() *MemoryReservations {
	return &MemoryReservations{m: m}
}

type MemoryFields struct {
	m *Memory
}

func (f *MemoryFields) Create(ctx context.Context, field *model.Field) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	field.ID = f.m.nextIDLocked()
	field.CreatedAt = time.Now()
	field.UpdatedAt = field.CreatedAt
	clone := *field
	f.m.fields[field.ID] = &clone
	return nil
}

func (f *MemoryFields) GetByID(ctx context.Context, id int64) (*model.Field, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	field, ok := f.m.fields[id]
	if !ok {
		return nil, nil
	}
	clone := *field
	return &clone, nil
}

func (f *MemoryFields) List(ctx context.Context) ([]*model.Field, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	var fields []*model.Field
	for _, field := range f.m.fields {
		clone := *field
		fields = append(fields, &clone)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields, nil
}

func (f *MemoryFields) Update(ctx context.Context, field *model.Field) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	existing, ok := f.m.fields[field.ID]
	if !ok {
		return apperr.NotFound("field not found")
	}

	field.CreatedAt = existing.CreatedAt
	field.UpdatedAt = time.Now()
	clone := *field
	f.m.fields[field.ID] = &clone
	return nil
}

func (f *MemoryFields) Delete(ctx context.Context, id int64) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()

	if _, ok := f.m.fields[id]; !ok {
		return apperr.NotFound("field not found")
	}
	delete(f.m.fields, id)

	// Каскад как в БД
	for resID, res := range f.m.reservations {
		if res.FieldID == id {
			delete(f.m.reservations, resID)
		}
	}
	return nil
}

type MemoryReservations struct {
	m *Memory
}

func (r *MemoryReservations) ListActive(ctx context.Context, fieldID int64, date string) ([]*model.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	return r.listActiveLocked(fieldID, date), nil
}

func (r *MemoryReservations) listActiveLocked(fieldID int64, date string) []*model.Reservation {
	var active []*model.Reservation
	for _, res := range r.m.reservations {
		if res.FieldID == fieldID && res.Date == date && res.Status.Blocks() {
			clone := *res
			active = append(active, &clone)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Start < active[j].Start })
	return active
}

func (r *MemoryReservations) CreateIfNoConflict(ctx context.Context, res *model.Reservation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	candidate := res.Interval()
	for _, existing := range r.listActiveLocked(res.FieldID, res.Date) {
		if candidate.Overlaps(existing.Interval()) {
			return apperr.Conflict("the selected time slot is already booked")
		}
	}

	res.ID = r.m.nextIDLocked()
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	clone := *res
	r.m.reservations[res.ID] = &clone
	return nil
}

func (r *MemoryReservations) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	res, ok := r.m.reservations[id]
	if !ok {
		return nil, nil
	}
	clone := *res
	return &clone, nil
}

func (r *MemoryReservations) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	res, ok := r.m.reservations[id]
	if !ok {
		return apperr.NotFound("reservation not found")
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryReservations) Delete(ctx context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.reservations[id]; !ok {
		return apperr.NotFound("reservation not found")
	}
	delete(r.m.reservations, id)
	return nil
}

func (r *MemoryReservations) ListByUser(ctx context.Context, userID int64) ([]*model.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var out []*model.Reservation
	for _, res := range r.m.reservations {
		if res.UserID == userID {
			clone := *res
			out = append(out, &clone)
		}
	}
	sortReservations(out)
	return out, nil
}

func (r *MemoryReservations) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var out []*model.Reservation
	for _, res := range r.m.reservations {
		clone := *res
		out = append(out, &clone)
	}
	sortReservations(out)
	return out, nil
}

func (r *MemoryReservations) CompletePast(ctx context.Context, today string, nowMin schedule.TimeOfDay) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var completed int64
	for _, res := range r.m.reservations {
		if res.Status != model.ReservationStatusConfirmed {
			continue
		}
		if res.Date < today || (res.Date == today && res.End <= nowMin) {
			res.Status = model.ReservationStatusCompleted
			res.UpdatedAt = time.Now()
			completed++
		}
	}
	return completed, nil
}

// Новые даты первыми, внутри даты по возрастанию времени
func sortReservations(out []*model.Reservation) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Start < out[j].Start
	})
}
