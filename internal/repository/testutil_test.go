package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
	"enlistment/backend/internal/repository"
	"enlistment/backend/pkg/database"
)

// newTestDB 每个测试独立的内存 SQLite；单连接保证共享缓存下事务串行执行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取 sql.DB 失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	repo *repository.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	return &fixture{db: db, repo: repository.NewRepository(db)}
}

func (f *fixture) room(t *testing.T, name string, capacity int) *model.Room {
	t.Helper()
	room := &model.Room{Name: name, Capacity: capacity}
	if err := f.repo.Room.Create(context.Background(), room); err != nil {
		t.Fatalf("创建教室失败: %v", err)
	}
	return room
}

func (f *fixture) subject(t *testing.T, id string) {
	t.Helper()
	if err := f.repo.Subject.Create(context.Background(), &model.Subject{SubjectID: id}); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
}

func (f *fixture) student(t *testing.T, number int, lastname string) {
	t.Helper()
	err := f.repo.Student.Create(context.Background(), &model.Student{
		StudentNumber: number,
		Firstname:     "Test",
		Lastname:      lastname,
		PasswordHash:  "$2a$10$placeholder",
	})
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
}

// section 建班（教室需已存在，使用当前教室版本）
func (f *fixture) section(t *testing.T, id, subjectID, days, start, end, roomName string) *domain.Section {
	t.Helper()
	ctx := context.Background()
	room, err := f.repo.Room.GetByName(ctx, roomName)
	if err != nil {
		t.Fatalf("查询教室失败: %v", err)
	}
	schedule, err := domain.ParseSchedule(days, start, end)
	if err != nil {
		t.Fatalf("解析时间失败: %v", err)
	}
	sec, err := domain.NewSection(id, subjectID, schedule, domain.Room{Name: room.Name, Capacity: room.Capacity})
	if err != nil {
		t.Fatalf("构造班级失败: %v", err)
	}
	if err := f.repo.Section.Create(ctx, sec, room.Version); err != nil {
		t.Fatalf("创建班级失败: %v", err)
	}
	return sec
}

// enlist 加载快照、内存校验、条件写入（不重试）
func (f *fixture) enlist(t *testing.T, number int, sectionID string) error {
	t.Helper()
	ctx := context.Background()
	student, err := f.repo.Student.Load(ctx, number)
	if err != nil {
		t.Fatalf("加载学生失败: %v", err)
	}
	section, err := f.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		t.Fatalf("加载班级失败: %v", err)
	}
	if err := student.Enlist(section); err != nil {
		return err
	}
	return f.repo.Enlistment.Save(ctx, domain.ActionEnlist, student, section)
}

func (f *fixture) linkCount(t *testing.T, number int, sectionID string) int64 {
	t.Helper()
	var n int64
	err := f.db.Model(&model.StudentSection{}).
		Where("student_number = ? AND section_id = ?", number, sectionID).
		Count(&n).Error
	if err != nil {
		t.Fatalf("查询选课关联失败: %v", err)
	}
	return n
}
