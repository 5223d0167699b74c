package dto

// ── 选课模块 DTO ──

// EnlistRequest 选课 / 退选请求
type EnlistRequest struct {
	SectionID string `json:"section_id" binding:"required,alphanum,max=50"`
	Action    string `json:"action"     binding:"required,oneof=ENLIST CANCEL enlist cancel"`
}

// EnlistResultResponse 选课 / 退选结果
type EnlistResultResponse struct {
	StudentNumber int             `json:"student_number"`
	Action        string          `json:"action"`
	Attempts      int             `json:"attempts"` // 含版本冲突重试在内的尝试次数
	Section       SectionResponse `json:"section"`
}

// EnlistOverviewResponse 选课页数据：已选班级 + 可选班级
type EnlistOverviewResponse struct {
	StudentNumber int               `json:"student_number"`
	Enlisted      []SectionResponse `json:"enlisted"`
	Available     []SectionResponse `json:"available"`
}
