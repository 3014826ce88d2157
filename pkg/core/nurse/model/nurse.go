package model

import (
	"gorm.io/gorm"
)

// Nurse is the stored record. The json tags describe the file store layout,
// which keeps the credential; responses go through the web projection instead.
type Nurse struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	User         string  `gorm:"column:user;type:varchar(50);uniqueIndex:idx_nurse_user;not null" json:"user"`
	Name         string  `gorm:"type:varchar(70);not null" json:"name"`
	Pw           string  `gorm:"column:pw;type:varchar(20);not null" json:"pw"`
	Title        *string `gorm:"type:varchar(50)" json:"title"`
	Specialty    *string `gorm:"type:varchar(100)" json:"specialty"`
	Description  *string `gorm:"type:text" json:"description"`
	Location     *string `gorm:"type:varchar(255)" json:"location"`
	Availability *string `gorm:"type:varchar(50)" json:"availability"`
	Image        *string `gorm:"type:varchar(255)" json:"image"`
}

// TableName 定义映射表名
func (Nurse) TableName() string {
	return "nurse"
}

// AutoMigrate creates or updates the nurse table. MySQL gets a binary
// collation so user lookups and LIKE filters stay case-sensitive.
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		db = db.Set("gorm:table_options",
			"ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin COMMENT='护士信息表'")
	}
	return db.AutoMigrate(&Nurse{})
}

// StringPtr is a small helper for building optional fields.
func StringPtr(s string) *string {
	return &s
}
