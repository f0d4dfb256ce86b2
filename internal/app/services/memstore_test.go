package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
)

// memState is the whole contents of the in-memory store
type memState struct {
	nextID     int64
	schools    map[int64]models.School
	courses    map[int64]models.Course
	pending    map[int64]models.PendingRequest
	precedents map[int64]models.TransferRequest
	admins     map[string]models.Admin
}

func newMemState() *memState {
	return &memState{
		schools:    map[int64]models.School{},
		courses:    map[int64]models.Course{},
		pending:    map[int64]models.PendingRequest{},
		precedents: map[int64]models.TransferRequest{},
		admins:     map[string]models.Admin{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextID = s.nextID
	for k, v := range s.schools {
		c.schools[k] = v
	}
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, v := range s.pending {
		c.pending[k] = v
	}
	for k, v := range s.precedents {
		c.precedents[k] = v
	}
	for k, v := range s.admins {
		c.admins[k] = v
	}
	return c
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memStore is a repositories.Store whose transactions work on a copy of the
// state that is swapped in only when fn succeeds. Faults keyed by operation
// name make that operation fail.
type memStore struct {
	mu     *sync.Mutex
	state  *memState
	inTx   bool
	faults map[string]error
	txs    *int
}

func newMemStore() *memStore {
	txs := 0
	return &memStore{
		mu:     &sync.Mutex{},
		state:  newMemState(),
		faults: map[string]error{},
		txs:    &txs,
	}
}

func (m *memStore) fail(op string) error {
	return m.faults[op]
}

func (m *memStore) Schools() repositories.SchoolRepository {
	return memSchools{m}
}

func (m *memStore) Courses() repositories.CourseRepository {
	return memCourses{m}
}

func (m *memStore) PendingRequests() repositories.PendingRequestRepository {
	return memPending{m}
}

func (m *memStore) TransferRequests() repositories.TransferRequestRepository {
	return memPrecedents{m}
}

func (m *memStore) Admins() repositories.AdminRepository {
	return memAdmins{m}
}

func (m *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if m.inTx {
		return fn(ctx, m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	*m.txs++

	if err := m.fail("begin"); err != nil {
		return err
	}

	tx := &memStore{mu: m.mu, state: m.state.clone(), inTx: true, faults: m.faults, txs: m.txs}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := m.fail("commit"); err != nil {
		return err
	}

	m.state = tx.state
	return nil
}

// seeding helpers

func (m *memStore) addSchool(name, location string, international bool) models.School {
	school := models.School{ID: m.state.id(), Name: name, Location: location, International: international}
	m.state.schools[school.ID] = school
	return school
}

func (m *memStore) addSchoolWithID(id int64, name, location string) models.School {
	school := models.School{ID: id, Name: name, Location: location}
	m.state.schools[id] = school
	if m.state.nextID < id {
		m.state.nextID = id
	}
	return school
}

func (m *memStore) addCourse(schoolID int64, name, num string) models.Course {
	course := models.Course{ID: m.state.id(), SchoolID: schoolID, Name: name, CourseNum: num}
	m.state.courses[course.ID] = course
	return course
}

func (m *memStore) addPrecedent(tr models.TransferRequest) models.TransferRequest {
	tr.ID = m.state.id()
	m.state.precedents[tr.ID] = tr
	return tr
}

type memSchools struct{ m *memStore }

func (r memSchools) GetByID(_ context.Context, id int64) (*models.School, error) {
	if err := r.m.fail("schools.GetByID"); err != nil {
		return nil, err
	}
	school, ok := r.m.state.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	return &school, nil
}

func (r memSchools) FindByIdentity(_ context.Context, identity models.SchoolIdentity) (*models.School, error) {
	for _, school := range r.m.state.schools {
		if school.Identity() == identity {
			s := school
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSchools) ResolveOrCreate(ctx context.Context, identity models.SchoolIdentity) (*models.School, error) {
	if err := r.m.fail("schools.ResolveOrCreate"); err != nil {
		return nil, err
	}
	if existing, _ := r.FindByIdentity(ctx, identity); existing != nil {
		return existing, nil
	}
	school := models.School{ID: r.m.state.id(), Name: identity.Name, Location: identity.Location, International: identity.International}
	r.m.state.schools[school.ID] = school
	return &school, nil
}

func (r memSchools) ListExcluding(_ context.Context, excludeID int64) ([]*models.School, error) {
	schools := []*models.School{}
	for id, school := range r.m.state.schools {
		if id == excludeID {
			continue
		}
		s := school
		schools = append(schools, &s)
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })
	return schools, nil
}

type memCourses struct{ m *memStore }

func (r memCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.m.state.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &course, nil
}

func (r memCourses) GetBySchoolAndID(_ context.Context, schoolID, id int64) (*models.Course, error) {
	course, ok := r.m.state.courses[id]
	if !ok || course.SchoolID != schoolID {
		return nil, apperrors.ErrCourseNotFound
	}
	return &course, nil
}

func (r memCourses) ResolveOrCreate(_ context.Context, schoolID int64, identity models.CourseIdentity) (*models.Course, error) {
	if err := r.m.fail("courses.ResolveOrCreate"); err != nil {
		return nil, err
	}
	if _, ok := r.m.state.schools[schoolID]; !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	for _, course := range r.m.state.courses {
		if course.SchoolID == schoolID && course.Identity() == identity {
			c := course
			return &c, nil
		}
	}
	course := models.Course{ID: r.m.state.id(), SchoolID: schoolID, Name: identity.Name, CourseNum: identity.CourseNum}
	r.m.state.courses[course.ID] = course
	return &course, nil
}

func (r memCourses) ListBySchool(_ context.Context, schoolID int64) ([]*models.Course, error) {
	courses := []*models.Course{}
	for _, course := range r.m.state.courses {
		if course.SchoolID == schoolID {
			c := course
			courses = append(courses, &c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Name < courses[j].Name })
	return courses, nil
}

type memPending struct{ m *memStore }

func (r memPending) Create(_ context.Context, req *models.PendingRequest) error {
	if err := r.m.fail("pending.Create"); err != nil {
		return err
	}
	req.ID = r.m.state.id()
	r.m.state.pending[req.ID] = *req
	return nil
}

func (r memPending) GetByID(_ context.Context, id int64) (*models.PendingRequest, error) {
	req, ok := r.m.state.pending[id]
	if !ok {
		return nil, apperrors.ErrPendingRequestNotFound
	}
	return &req, nil
}

func (r memPending) List(_ context.Context) ([]*models.PendingRequest, error) {
	if err := r.m.fail("pending.List"); err != nil {
		return nil, err
	}
	requests := []*models.PendingRequest{}
	for _, req := range r.m.state.pending {
		p := req
		requests = append(requests, &p)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (r memPending) Delete(_ context.Context, id int64) error {
	if err := r.m.fail("pending.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.state.pending[id]; !ok {
		return apperrors.ErrPendingRequestNotFound
	}
	delete(r.m.state.pending, id)
	return nil
}

type memPrecedents struct{ m *memStore }

func (r memPrecedents) FindLatestMatch(_ context.Context, key models.PrecedentKey) (*models.TransferRequest, error) {
	if err := r.m.fail("precedents.FindLatestMatch"); err != nil {
		return nil, err
	}
	var latest *models.TransferRequest
	for _, tr := range r.m.state.precedents {
		if tr.Key() != key {
			continue
		}
		if latest == nil || tr.DecidedAt.After(latest.DecidedAt) {
			t := tr
			latest = &t
		}
	}
	return latest, nil
}

func (r memPrecedents) Create(_ context.Context, tr *models.TransferRequest) error {
	if err := r.m.fail("precedents.Create"); err != nil {
		return err
	}
	tr.ID = r.m.state.id()
	r.m.state.precedents[tr.ID] = *tr
	return nil
}

func (r memPrecedents) List(_ context.Context, offset, limit int) ([]*models.TransferRequest, int64, error) {
	all := []*models.TransferRequest{}
	for _, tr := range r.m.state.precedents {
		t := tr
		all = append(all, &t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DecidedAt.After(all[j].DecidedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []*models.TransferRequest{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memAdmins struct{ m *memStore }

func (r memAdmins) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	admin, ok := r.m.state.admins[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	return &admin, nil
}

func (r memAdmins) Create(_ context.Context, admin *models.Admin) error {
	if _, ok := r.m.state.admins[admin.Email]; ok {
		return apperrors.NewConflictError("admin with this email already exists")
	}
	admin.ID = r.m.state.id()
	r.m.state.admins[admin.Email] = *admin
	return nil
}

func (r memAdmins) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.m.state.admins[email]
	return ok, nil
}

// recordingNotifier captures every notification and can be told to fail
type recordingNotifier struct {
	outcomes []recordedOutcome
	notices  []models.RequestSnapshot
	err      error
}

type recordedOutcome struct {
	contact  models.Contact
	snapshot models.RequestSnapshot
	decision models.Decision
}

func (n *recordingNotifier) SendOutcomeEmail(_ context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error {
	n.outcomes = append(n.outcomes, recordedOutcome{contact: contact, snapshot: snapshot, decision: decision})
	return n.err
}

func (n *recordingNotifier) SendAdminPendingNotice(_ context.Context, snapshot models.RequestSnapshot) error {
	n.notices = append(n.notices, snapshot)
	return n.err
}
