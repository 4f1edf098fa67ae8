package domain

// Role represents the global role of a user
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleCollaborator Role = "COLLABORATOR"
)

// User represents a registered user
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'COLLABORATOR';index:idx_users_role" json:"role"`
	AvatarURL    string `gorm:"type:text" json:"avatarUrl"`

	Kanbans     []Kanban       `gorm:"foreignKey:OwnerID" json:"kanbans,omitempty"`
	Memberships []KanbanMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the global ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
