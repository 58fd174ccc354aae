package serviceimpl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rental-crm/domain/models"
	"rental-crm/domain/ports"
	"rental-crm/domain/repositories"
	"rental-crm/pkg/query"
)

// memStore จำลอง database ใน test: FK, cascade และ SET NULL ทำงานแบบเดียวกับ schema จริง
type memStore struct {
	mu           sync.Mutex
	nextID       uint
	clock        time.Time
	leads        map[uint]*models.Lead
	appointments map[uint]*models.Appointment
	tasks        map[uint]*models.Task
	users        map[uuid.UUID]*models.User

	countPreds []query.Predicate
	listPreds  []query.Predicate
	writes     int
}

func newMemStore() *memStore {
	return &memStore{
		clock:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		leads:        map[uint]*models.Lead{},
		appointments: map[uint]*models.Appointment{},
		tasks:        map[uint]*models.Task{},
		users:        map[uuid.UUID]*models.User{},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

// ═══════════════════════════════════════════════════════════════════════════════
// Leads
// ═══════════════════════════════════════════════════════════════════════════════

type memLeadRepo struct{ *memStore }

func leadRow(l *models.Lead) map[string]interface{} {
	return map[string]interface{}{
		"nome":       l.Nome,
		"localita":   l.Localita,
		"email":      deref(l.Email),
		"telefono":   deref(l.Telefono),
		"note":       deref(l.Note),
		"status":     string(l.Status),
		"contattato": l.Contattato,
	}
}

func (r memLeadRepo) Create(_ context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.ID = r.id()
	lead.CreatedAt = r.tick()
	lead.UpdatedAt = lead.CreatedAt
	cp := *lead
	r.leads[lead.ID] = &cp
	r.writes++
	return nil
}

func (r memLeadRepo) GetByID(_ context.Context, id uint) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r memLeadRepo) Exists(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.leads[id]
	return ok, nil
}

func (r memLeadRepo) matching(filter query.Predicate) []*models.Lead {
	var out []*models.Lead
	for _, l := range r.leads {
		if evalPredicate(filter, leadRow(l)) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r memLeadRepo) List(_ context.Context, filter query.Predicate, offset, limit int) ([]*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listPreds = append(r.listPreds, filter)
	return page(r.matching(filter), offset, limit), nil
}

func (r memLeadRepo) Count(_ context.Context, filter query.Predicate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countPreds = append(r.countPreds, filter)
	return int64(len(r.matching(filter))), nil
}

func (r memLeadRepo) Update(_ context.Context, id uint, fields map[string]interface{}) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "nome":
			l.Nome = v.(string)
		case "localita":
			l.Localita = v.(string)
		case "camere":
			l.Camere = v.(int)
		case "telefono":
			l.Telefono = optString(v)
		case "email":
			l.Email = optString(v)
		case "note":
			l.Note = optString(v)
		case "contattato":
			l.Contattato = v.(bool)
		case "status":
			l.Status = models.LeadStatus(v.(string))
		}
	}
	l.UpdatedAt = r.tick()
	r.writes++
	cp := *l
	return &cp, nil
}

func (r memLeadRepo) DeleteWithAppointments(_ context.Context, id uint) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for aid, a := range r.appointments {
		if a.LeadID == id {
			delete(r.appointments, aid)
		}
	}
	for _, t := range r.tasks {
		if t.LeadID != nil && *t.LeadID == id {
			t.LeadID = nil
		}
	}
	delete(r.leads, id)
	r.writes++
	return l, nil
}

func optString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

// ═══════════════════════════════════════════════════════════════════════════════
// Appointments
// ═══════════════════════════════════════════════════════════════════════════════

type memAppointmentRepo struct{ *memStore }

func (r memAppointmentRepo) joined(a *models.Appointment) *models.AppointmentWithLead {
	row := &models.AppointmentWithLead{Appointment: *a}
	if l, ok := r.leads[a.LeadID]; ok {
		nome, localita := l.Nome, l.Localita
		row.LeadNome, row.LeadLocalita = &nome, &localita
	}
	return row
}

func appointmentRow(a *models.AppointmentWithLead) map[string]interface{} {
	return map[string]interface{}{
		"appointments.tipo":       a.Tipo,
		"appointments.luogo":      deref(a.Luogo),
		"appointments.note":       deref(a.Note),
		"appointments.completato": a.Completato,
		"leads.nome":              deref(a.LeadNome),
		"leads.localita":          deref(a.LeadLocalita),
	}
}

func (r memAppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[a.LeadID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	a.ID = r.id()
	a.CreatedAt = r.tick()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.appointments[a.ID] = &cp
	r.writes++
	return nil
}

func (r memAppointmentRepo) GetByID(_ context.Context, id uint) (*models.AppointmentWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.joined(a), nil
}

func (r memAppointmentRepo) matching(filter query.Predicate) []*models.AppointmentWithLead {
	var out []*models.AppointmentWithLead
	for _, a := range r.appointments {
		row := r.joined(a)
		if evalPredicate(filter, appointmentRow(row)) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Data.Equal(out[j].Data) {
			return out[i].Data.After(out[j].Data)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r memAppointmentRepo) List(_ context.Context, filter query.Predicate, offset, limit int) ([]*models.AppointmentWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listPreds = append(r.listPreds, filter)
	return page(r.matching(filter), offset, limit), nil
}

func (r memAppointmentRepo) Count(_ context.Context, filter query.Predicate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countPreds = append(r.countPreds, filter)
	return int64(len(r.matching(filter))), nil
}

func (r memAppointmentRepo) Update(_ context.Context, id uint, fields map[string]interface{}) (*models.AppointmentWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if v, ok := fields["lead_id"]; ok {
		if _, exists := r.leads[v.(uint)]; !exists {
			return nil, repositories.ErrForeignKeyViolation
		}
	}
	for k, v := range fields {
		switch k {
		case "lead_id":
			a.LeadID = v.(uint)
		case "data":
			a.Data = v.(time.Time)
		case "tipo":
			a.Tipo = v.(string)
		case "luogo":
			a.Luogo = optString(v)
		case "note":
			a.Note = optString(v)
		case "completato":
			a.Completato = v.(bool)
		}
	}
	a.UpdatedAt = r.tick()
	r.writes++
	return r.joined(a), nil
}

func (r memAppointmentRepo) Delete(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.appointments, id)
	r.writes++
	return a, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// Tasks
// ═══════════════════════════════════════════════════════════════════════════════

type memTaskRepo struct{ *memStore }

func (r memTaskRepo) joined(t *models.Task) *models.TaskWithLead {
	row := &models.TaskWithLead{Task: *t}
	if t.LeadID != nil {
		if l, ok := r.leads[*t.LeadID]; ok {
			nome, localita, status := l.Nome, l.Localita, l.Status
			row.LeadNome, row.LeadLocalita, row.LeadStatus = &nome, &localita, &status
		}
	}
	return row
}

func (r memTaskRepo) Create(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.LeadID != nil {
		if _, ok := r.leads[*t.LeadID]; !ok {
			return repositories.ErrForeignKeyViolation
		}
	}
	t.ID = r.id()
	t.CreatedAt = r.tick()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.tasks[t.ID] = &cp
	r.writes++
	return nil
}

func (r memTaskRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.TaskWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.TaskWithLead{}
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, r.joined(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memTaskRepo) owned(id uint, userID uuid.UUID) (*models.Task, bool) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, false
	}
	return t, true
}

func (r memTaskRepo) GetOwned(_ context.Context, id uint, userID uuid.UUID) (*models.TaskWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.joined(t), nil
}

func (r memTaskRepo) UpdateOwned(_ context.Context, id uint, userID uuid.UUID, fields map[string]interface{}) (*models.TaskWithLead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "titolo":
			t.Titolo = v.(string)
		case "descrizione":
			t.Descrizione = optString(v)
		case "tipo":
			t.Tipo = models.TaskType(v.(string))
		case "priorita":
			t.Priorita = models.TaskPriority(v.(string))
		case "stato":
			t.Stato = models.TaskStatus(v.(string))
		case "completato":
			t.Completato = v.(bool)
		case "colore":
			t.Colore = v.(string)
		case "scadenza":
			if v == nil {
				t.Scadenza = nil
			} else {
				due := v.(time.Time)
				t.Scadenza = &due
			}
		case "lead_id":
			if v == nil {
				t.LeadID = nil
			} else {
				id := v.(uint)
				t.LeadID = &id
			}
		}
	}
	t.UpdatedAt = r.tick()
	r.writes++
	return r.joined(t), nil
}

func (r memTaskRepo) DeleteOwned(_ context.Context, id uint, userID uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.owned(id, userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.tasks, id)
	r.writes++
	return t, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// Users / sessions / events
// ═══════════════════════════════════════════════════════════════════════════════

type memUserRepo struct{ *memStore }

func (r memUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repositories.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
	err      error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]uuid.UUID{}}
}

func (s *memSessions) Create(_ context.Context, id string, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sessions[id] = userID
	return nil
}

func (s *memSessions) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.CRMEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e ports.CRMEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject())
	}
	return out
}
