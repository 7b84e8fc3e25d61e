package domain

import "time"

// Well-known role IDs seeded at startup.
const (
	AdminRoleID   = 1
	StudentRoleID = 2
)

type Role struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"size:255"`

	// Relations
	Users []User `json:"users,omitempty" gorm:"foreignKey:RoleID"`
}

type User struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	RoleID       int       `json:"roleId" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Role  *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// IsAdmin reports whether the user holds the admin role. The flag is
// derived from the role ID, never stored on the row itself.
func (u *User) IsAdmin() bool {
	return u.RoleID == AdminRoleID
}

// ToSession builds the cacheable session snapshot for the user.
func (u *User) ToSession() *Session {
	return &Session{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin(),
	}
}
