package service

import (
	"errors"

	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
)

func toSectionResponse(s *domain.Section) dto.SectionResponse {
	period := s.Schedule.Period()
	return dto.SectionResponse{
		SectionID: s.ID,
		SubjectID: s.SubjectID,
		Days:      s.Schedule.Days().String(),
		StartTime: period.Start().String(),
		EndTime:   period.End().String(),
		Schedule:  s.Schedule.Signature(),
		RoomName:  s.Room.Name,
		Capacity:  s.Room.Capacity,
		Enrolled:  s.Enrolled,
		Vacancy:   s.Room.Capacity - s.Enrolled,
		Version:   s.Version,
	}
}

func toSectionResponses(sections []*domain.Section) []dto.SectionResponse {
	out := make([]dto.SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, toSectionResponse(s))
	}
	return out
}

// notFound 将 gorm.ErrRecordNotFound 转换为 *domain.NotFoundError，其他错误原样返回
func notFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return err
}
