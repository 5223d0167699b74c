package dto

// ── 教室 / 课程 / 学生档案 DTO ──

// CreateRoomRequest 新建教室请求
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,max=50"`
	Capacity int    `json:"capacity" binding:"min=0,max=1000"`
}

// RoomResponse 教室信息
type RoomResponse struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// CreateSubjectRequest 新建课程请求
type CreateSubjectRequest struct {
	SubjectID string `json:"subject_id" binding:"required,alphanum,max=50"`
}

// SubjectResponse 课程信息
type SubjectResponse struct {
	SubjectID string `json:"subject_id"`
}

// CreateStudentRequest 新建学生档案请求
type CreateStudentRequest struct {
	StudentNumber int    `json:"student_number" binding:"required,min=1"`
	Firstname     string `json:"firstname"      binding:"required,max=100"`
	Lastname      string `json:"lastname"       binding:"required,max=100"`
	Password      string `json:"password"       binding:"required,min=8,max=72"`
}

// StudentResponse 学生档案
type StudentResponse struct {
	StudentNumber int    `json:"student_number"`
	Firstname     string `json:"firstname"`
	Lastname      string `json:"lastname"`
}

// SectionPageResponse 管理员建班页数据
type SectionPageResponse struct {
	Rooms    []RoomResponse    `json:"rooms"`
	Subjects []SubjectResponse `json:"subjects"`
	Days     []string          `json:"days"`
}
