package service

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
	"enlistment/backend/internal/repository"
	pkgerrors "enlistment/backend/pkg/errors"
)

// ── 内存存储 ──
//
// 所有 Mock Repository 共享同一个 memStore，条件写入语义与 gorm 实现一致：
// 版本不匹配返回 ErrOptimisticLock 且不修改任何数据。

type memStore struct {
	mu       sync.Mutex
	rooms    map[string]*model.Room
	subjects map[string]*model.Subject
	sections map[string]*model.Section
	students map[int]*model.Student
	admins   map[int]*model.Admin
	links    map[int]map[string]bool

	// beforeSave 在每次 Enlistment.Save 加锁前调用，用于模拟并发写入者
	beforeSave func(call int)
	saveCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		rooms:    make(map[string]*model.Room),
		subjects: make(map[string]*model.Subject),
		sections: make(map[string]*model.Section),
		students: make(map[int]*model.Student),
		admins:   make(map[int]*model.Admin),
		links:    make(map[int]map[string]bool),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Room:       &mockRoomRepo{s: s},
		Subject:    &mockSubjectRepo{s: s},
		Section:    &mockSectionRepo{s: s},
		Student:    &mockStudentRepo{s: s},
		Admin:      &mockAdminRepo{s: s},
		Enlistment: &mockEnlistmentRepo{s: s},
	}
}

// toDomain 调用方需持有锁
func (s *memStore) toDomain(row *model.Section) *domain.Section {
	schedule, err := domain.ParseSchedule(row.Days, row.StartTime, row.EndTime)
	if err != nil {
		panic(err)
	}
	room := s.rooms[row.RoomName]
	return &domain.Section{
		ID:        row.SectionID,
		SubjectID: row.SubjectID,
		Schedule:  schedule,
		Room:      domain.Room{Name: room.Name, Capacity: room.Capacity},
		Enrolled:  row.EnrolledCount,
		Version:   row.Version,
	}
}

func (s *memStore) sortedSections(filter func(*model.Section) bool) []*domain.Section {
	ids := make([]string, 0, len(s.sections))
	for id, row := range s.sections {
		if filter == nil || filter(row) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]*domain.Section, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.toDomain(s.sections[id]))
	}
	return out
}

// bumpSection 模拟其他请求已提交：推进班级版本
func (s *memStore) bumpSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[id].Version++
}

// ── Mock RoomRepository ──

type mockRoomRepo struct{ s *memStore }

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.rooms[room.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	if room.Version == 0 {
		room.Version = 1
	}
	cp := *room
	m.s.rooms[room.Name] = &cp
	return nil
}

func (m *mockRoomRepo) GetByName(_ context.Context, name string) (*model.Room, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if r, ok := m.s.rooms[name]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Room
	for _, r := range m.s.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct{ s *memStore }

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.subjects[subject.SubjectID]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *subject
	m.s.subjects[subject.SubjectID] = &cp
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sub, ok := m.s.subjects[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Subject
	for _, sub := range m.s.subjects {
		result = append(result, *sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubjectID < result[j].SubjectID })
	return result, nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct{ s *memStore }

func (m *mockSectionRepo) Create(_ context.Context, sec *domain.Section, roomVersion int) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	room, ok := m.s.rooms[sec.Room.Name]
	if !ok || room.Version != roomVersion {
		return pkgerrors.ErrOptimisticLock
	}
	period := sec.Schedule.Period()
	row := &model.Section{
		SectionID: sec.ID,
		SubjectID: sec.SubjectID,
		Days:      sec.Schedule.Days().String(),
		StartTime: period.Start().String(),
		EndTime:   period.End().String(),
		RoomName:  sec.Room.Name,
	}
	if _, ok := m.s.sections[sec.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, other := range m.s.sections {
		if other.RoomName == row.RoomName && other.Days == row.Days &&
			other.StartTime == row.StartTime && other.EndTime == row.EndTime {
			return gorm.ErrDuplicatedKey
		}
	}
	row.Version = 1
	m.s.sections[sec.ID] = row
	room.Version++
	sec.Version = 1
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*domain.Section, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if row, ok := m.s.sections[id]; ok {
		return m.s.toDomain(row), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) List(_ context.Context) ([]*domain.Section, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.sortedSections(nil), nil
}

func (m *mockSectionRepo) ListPage(_ context.Context, offset, limit int) ([]*domain.Section, int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	all := m.s.sortedSections(nil)
	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Section{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (m *mockSectionRepo) ListByRoom(_ context.Context, roomName string) ([]*domain.Section, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.sortedSections(func(row *model.Section) bool { return row.RoomName == roomName }), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct{ s *memStore }

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.students[student.StudentNumber]; ok {
		return gorm.ErrDuplicatedKey
	}
	if student.Version == 0 {
		student.Version = 1
	}
	cp := *student
	m.s.students[student.StudentNumber] = &cp
	return nil
}

func (m *mockStudentRepo) GetByNumber(_ context.Context, number int) (*model.Student, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if st, ok := m.s.students[number]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Load(_ context.Context, number int) (*domain.Student, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	row, ok := m.s.students[number]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	links := m.s.links[number]
	return &domain.Student{
		Number:   number,
		Version:  row.Version,
		Sections: m.s.sortedSections(func(sec *model.Section) bool { return links[sec.SectionID] }),
	}, nil
}

func (m *mockStudentRepo) ListBySection(_ context.Context, sectionID string) ([]model.Student, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var result []model.Student
	for number, links := range m.s.links {
		if links[sectionID] {
			result = append(result, *m.s.students[number])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Lastname < result[j].Lastname })
	return result, nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct{ s *memStore }

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *admin
	m.s.admins[admin.AdminID] = &cp
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id int) (*model.Admin, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if a, ok := m.s.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock EnlistmentRepository ──

type mockEnlistmentRepo struct{ s *memStore }

func (m *mockEnlistmentRepo) Save(_ context.Context, action domain.Action, student *domain.Student, section *domain.Section) error {
	m.s.mu.Lock()
	m.s.saveCalls++
	call := m.s.saveCalls
	hook := m.s.beforeSave
	m.s.mu.Unlock()
	if hook != nil {
		hook(call)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	secRow, ok := m.s.sections[section.ID]
	if !ok || secRow.Version != section.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stRow, ok := m.s.students[student.Number]
	if !ok || stRow.Version != student.Version {
		return pkgerrors.ErrOptimisticLock
	}

	links := m.s.links[student.Number]
	if links == nil {
		links = make(map[string]bool)
		m.s.links[student.Number] = links
	}
	switch action {
	case domain.ActionEnlist:
		if links[section.ID] {
			return gorm.ErrDuplicatedKey
		}
		links[section.ID] = true
	case domain.ActionCancel:
		if !links[section.ID] {
			return pkgerrors.ErrOptimisticLock
		}
		delete(links, section.ID)
	}

	secRow.EnrolledCount = section.Enrolled
	secRow.Version++
	stRow.Version++
	section.Version++
	student.Version++
	return nil
}

// ── 测试数据 ──

func (s *memStore) addRoom(name string, capacity int) {
	_ = (&mockRoomRepo{s: s}).Create(context.Background(), &model.Room{Name: name, Capacity: capacity})
}

func (s *memStore) addSubject(id string) {
	_ = (&mockSubjectRepo{s: s}).Create(context.Background(), &model.Subject{SubjectID: id})
}

func (s *memStore) addStudent(number int, lastname string) {
	_ = (&mockStudentRepo{s: s}).Create(context.Background(), &model.Student{
		StudentNumber: number,
		Firstname:     "Test",
		Lastname:      lastname,
		PasswordHash:  "$2a$10$placeholder",
	})
}

// addSection 直接写入班级行（不经过冲突校验）
func (s *memStore) addSection(id, subjectID, days, start, end, roomName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[id] = &model.Section{
		SectionID:      id,
		SubjectID:      subjectID,
		Days:           days,
		StartTime:      start,
		EndTime:        end,
		RoomName:       roomName,
		VersionedModel: model.VersionedModel{Version: 1},
	}
}

func (s *memStore) enrolled(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[id].EnrolledCount
}
