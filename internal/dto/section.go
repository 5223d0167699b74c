package dto

// ── 班级模块 DTO ──

// CreateSectionRequest 新建班级请求
// start_time / end_time 接受 "15:04" 或 "3:04PM"
type CreateSectionRequest struct {
	SectionID string `json:"section_id" binding:"required,alphanum,max=50"`
	SubjectID string `json:"subject_id" binding:"required,max=50"`
	Days      string `json:"days"       binding:"required,days"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time"   binding:"required,clock"`
	RoomName  string `json:"room_name"  binding:"required,max=50"`
}

// SectionListRequest 班级列表查询
type SectionListRequest struct {
	PaginationRequest
}

// SectionResponse 班级信息
type SectionResponse struct {
	SectionID string `json:"section_id"`
	SubjectID string `json:"subject_id"`
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Schedule  string `json:"schedule"` // "MTH 09:00-10:30"
	RoomName  string `json:"room_name"`
	Capacity  int    `json:"capacity"`
	Enrolled  int    `json:"enrolled"`
	Vacancy   int    `json:"vacancy"`
	Version   int    `json:"version"`
}
