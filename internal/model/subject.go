package model

// Subject 课程表，对应 subjects
type Subject struct {
	SubjectID string `gorm:"type:varchar(50);primaryKey" json:"subject_id"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
