package model

// All 返回全部表模型，测试环境 AutoMigrate 使用（生产环境由迁移文件建表）
func All() []interface{} {
	return []interface{}{
		&Room{},
		&Subject{},
		&Section{},
		&Student{},
		&StudentSection{},
		&Admin{},
	}
}
