package models

// Identity is an authenticable login principal. It is deliberately
// tenant-free: tenant affiliation is derived through the one-to-one
// Employee record, and a superuser identity may have none at all.
type Identity struct {
	Base
	Username     string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Email        string `gorm:"size:100" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	IsSuperuser  bool   `gorm:"not null;default:false" json:"is_superuser"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
}

func (Identity) TableName() string { return "identities" }

// FullName is the display name embedded in issued tokens.
func (i Identity) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	if i.FirstName == "" {
		return i.LastName
	}
	return i.FirstName + " " + i.LastName
}
