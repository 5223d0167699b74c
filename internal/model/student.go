package model

// Student 学生表，对应 students
type Student struct {
	StudentNumber int    `gorm:"primaryKey;autoIncrement:false"  json:"student_number"`
	Firstname     string `gorm:"type:varchar(100);not null"      json:"firstname"`
	Lastname      string `gorm:"type:varchar(100);not null"      json:"lastname"`
	PasswordHash  string `gorm:"type:varchar(255);not null"      json:"-"`
	VersionedModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// StudentSection 选课关联表，对应 student_sections
//
// 不属于任何聚合，与学生、班级的版本更新在同一事务内写入或删除。
type StudentSection struct {
	StudentNumber int    `gorm:"primaryKey;autoIncrement:false"   json:"student_number"`
	SectionID     string `gorm:"type:varchar(50);primaryKey;index" json:"section_id"`
	BaseModel
}

// TableName 指定表名
func (StudentSection) TableName() string { return "student_sections" }
