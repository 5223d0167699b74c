package model

// Admin 管理员表，对应 admins
type Admin struct {
	AdminID      int    `gorm:"primaryKey;autoIncrement:false" json:"admin_id"`
	Firstname    string `gorm:"type:varchar(100);not null"     json:"firstname"`
	Lastname     string `gorm:"type:varchar(100);not null"     json:"lastname"`
	PasswordHash string `gorm:"type:varchar(255);not null"     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Admin) TableName() string { return "admins" }
