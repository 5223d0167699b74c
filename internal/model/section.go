package model

// Section 班级表，对应 sections
//
// 同一教室同一时段（days + start_time + end_time）唯一；时间统一存为 "HH:MM"。
type Section struct {
	SectionID     string `gorm:"type:varchar(50);primaryKey"                             json:"section_id"`
	SubjectID     string `gorm:"type:varchar(50);not null;index"                         json:"subject_id"`
	Days          string `gorm:"type:varchar(5);not null;uniqueIndex:uq_sections_room_schedule,priority:2"  json:"days"`
	StartTime     string `gorm:"type:varchar(5);not null;uniqueIndex:uq_sections_room_schedule,priority:3"  json:"start_time"`
	EndTime       string `gorm:"type:varchar(5);not null;uniqueIndex:uq_sections_room_schedule,priority:4"  json:"end_time"`
	RoomName      string `gorm:"type:varchar(50);not null;uniqueIndex:uq_sections_room_schedule,priority:1" json:"room_name"`
	EnrolledCount int    `gorm:"not null;default:0"                                      json:"enrolled_count"`
	VersionedModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomName;references:Name"       json:"room,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }
