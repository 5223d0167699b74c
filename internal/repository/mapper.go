package repository

import (
	"fmt"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
)

// toDomainSection 行模型转班级聚合，要求已 Preload("Room")
func toDomainSection(m *model.Section) (*domain.Section, error) {
	if m.Room == nil {
		return nil, fmt.Errorf("班级 %s 未加载教室信息", m.SectionID)
	}
	schedule, err := domain.ParseSchedule(m.Days, m.StartTime, m.EndTime)
	if err != nil {
		return nil, fmt.Errorf("班级 %s 时间数据损坏: %w", m.SectionID, err)
	}
	return &domain.Section{
		ID:        m.SectionID,
		SubjectID: m.SubjectID,
		Schedule:  schedule,
		Room:      domain.Room{Name: m.Room.Name, Capacity: m.Room.Capacity},
		Enrolled:  m.EnrolledCount,
		Version:   m.Version,
	}, nil
}

func toDomainSections(rows []model.Section) ([]*domain.Section, error) {
	out := make([]*domain.Section, 0, len(rows))
	for i := range rows {
		sec, err := toDomainSection(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}

// toSectionModel 新建班级行，版本从 1 开始
func toSectionModel(s *domain.Section) *model.Section {
	period := s.Schedule.Period()
	return &model.Section{
		SectionID:      s.ID,
		SubjectID:      s.SubjectID,
		Days:           s.Schedule.Days().String(),
		StartTime:      period.Start().String(),
		EndTime:        period.End().String(),
		RoomName:       s.Room.Name,
		EnrolledCount:  s.Enrolled,
		VersionedModel: model.VersionedModel{Version: 1},
	}
}
