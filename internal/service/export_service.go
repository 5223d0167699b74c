package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"enlistment/backend/config"
	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSections   = errors.New("暂无班级")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// Excel 格式：
//   - Sheet "班级总览"：每个班级一行（时间、教室、容量、已选、空位）
//   - 每个班级一个 Sheet（以班级编号命名）：选课学生名单，按姓氏排序
type ExportService interface {
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	term   *config.TermConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(term *config.TermConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{term: term, repo: repo, logger: logger}
}

const overviewSheet = "班级总览"

func (s *exportService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全部班级
	sections, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(sections) == 0 {
		return nil, "", ErrExportNoSections
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(overviewSheet)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(overviewSheet, "A1", fmt.Sprintf("%s 选课名单", s.term.Name))
	f.MergeCell(overviewSheet, "A1", "H1")
	f.SetCellStyle(overviewSheet, "A1", "A1", headerStyle)

	headers := []string{"班级编号", "课程", "星期", "时间", "教室", "容量", "已选", "空位"}
	writeRow(f, overviewSheet, 2, headers)
	f.SetCellStyle(overviewSheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)
	f.SetColWidth(overviewSheet, "A", "E", 14)

	// 3. 总览 + 各班名单
	for i, sec := range sections {
		period := sec.Schedule.Period()
		writeRow(f, overviewSheet, 3+i, []interface{}{
			sec.ID,
			sec.SubjectID,
			sec.Schedule.Days().String(),
			period.String(),
			sec.Room.Name,
			sec.Room.Capacity,
			sec.Enrolled,
			sec.Room.Capacity - sec.Enrolled,
		})

		if err := s.writeRosterSheet(ctx, f, sheetName(sec.ID, i+1), sec, headerStyle); err != nil {
			return nil, "", err
		}
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("选课名单_%s.xlsx", s.term.Name)
	return buf, filename, nil
}

func (s *exportService) writeRosterSheet(ctx context.Context, f *excelize.File, sheet string, sec *domain.Section, headerStyle int) error {
	students, err := s.repo.Student.ListBySection(ctx, sec.ID)
	if err != nil {
		s.logger.Error("查询班级名单失败", zap.String("section_id", sec.ID), zap.Error(err))
		return err
	}

	if _, err := f.NewSheet(sheet); err != nil {
		s.logger.Error("创建工作表失败", zap.String("sheet", sheet), zap.Error(err))
		return ErrExportGenerateFail
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s %s %s", sec.ID, sec.Schedule.Signature(), sec.Room.Name))
	f.MergeCell(sheet, "A1", "D1")
	writeRow(f, sheet, 2, []string{"序号", "学号", "姓", "名"})
	f.SetCellStyle(sheet, "A2", "D2", headerStyle)
	f.SetColWidth(sheet, "B", "D", 16)

	for i, st := range students {
		writeRow(f, sheet, 3+i, []interface{}{i + 1, st.StudentNumber, st.Lastname, st.Firstname})
	}
	return nil
}

// ── 辅助函数 ──

func writeRow[T any](f *excelize.File, sheet string, row int, values []T) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

// sheetName Excel 工作表名最长 31 字符，超长时截断并以序号区分
func sheetName(sectionID string, seq int) string {
	if len(sectionID) <= 31 {
		return sectionID
	}
	suffix := "_" + strconv.Itoa(seq)
	return sectionID[:31-len(suffix)] + suffix
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
