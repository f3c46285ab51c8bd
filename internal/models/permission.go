package models

// Permission is a global, named capability checked at mutation time. The
// catalog is tenant-independent and maintained by operators; only
// superusers may change it.
type Permission struct {
	Base
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Permission) TableName() string { return "permissions" }
