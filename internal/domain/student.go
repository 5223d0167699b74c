package domain

// Student 学生聚合
//
// Sections 是加载时已选班级的快照，仅用于冲突校验；选课关系本身以
// (学号, 班级编号) 关联记录单独保存，不与 Section 互相持有引用。
type Student struct {
	Number   int
	Sections []*Section
	Version  int
}

// IsEnlisted 是否已选该班级
func (s *Student) IsEnlisted(sectionID string) bool {
	return s.indexOf(sectionID) >= 0
}

// SectionIDs 已选班级编号
func (s *Student) SectionIDs() []string {
	ids := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		ids = append(ids, sec.ID)
	}
	return ids
}

// Enlist 选课：先校验重复与时间冲突，再由班级校验容量
func (s *Student) Enlist(section *Section) error {
	for _, enlisted := range s.Sections {
		// 重复选同一班级视为与自身冲突
		if enlisted.ID == section.ID || enlisted.Schedule.ConflictsWith(section.Schedule) {
			return &ScheduleConflictError{
				SectionID:       section.ID,
				ConflictsWithID: enlisted.ID,
				Schedule:        section.Schedule,
				Other:           enlisted.Schedule,
			}
		}
	}
	if err := section.Enroll(); err != nil {
		return err
	}
	s.Sections = append(s.Sections, section)
	return nil
}

// Cancel 退选
func (s *Student) Cancel(section *Section) error {
	idx := s.indexOf(section.ID)
	if idx < 0 {
		return &NotEnrolledError{StudentNumber: s.Number, SectionID: section.ID}
	}
	if err := section.Cancel(); err != nil {
		return err
	}
	s.Sections = append(s.Sections[:idx:idx], s.Sections[idx+1:]...)
	return nil
}

func (s *Student) indexOf(sectionID string) int {
	for i, sec := range s.Sections {
		if sec.ID == sectionID {
			return i
		}
	}
	return -1
}
