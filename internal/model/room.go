package model

// Room 教室表，对应 rooms
type Room struct {
	Name     string `gorm:"type:varchar(50);primaryKey" json:"name"`
	Capacity int    `gorm:"not null"                    json:"capacity"`
	VersionedModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
