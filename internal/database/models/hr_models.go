package models

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	Role       string     `gorm:"size:20;not null;default:EMPLOYEE" json:"role"`
	IsVerified bool       `gorm:"default:false" json:"is_verified"`
	CreatedAt  *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Department struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Employee is the registry every sub-engine reads. Manager is a nullable
// self-reference stored as a plain id and resolved on demand.
type Employee struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       *int64      `gorm:"uniqueIndex" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FirstName    string      `gorm:"size:100;not null" json:"first_name"`
	LastName     string      `gorm:"size:100;not null" json:"last_name"`
	Phone        string      `gorm:"size:20" json:"phone"`
	DepartmentID *int64      `json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Designation  string      `gorm:"size:100" json:"designation"`
	JoiningDate  string      `json:"joining_date"`
	Salary       string      `gorm:"type:decimal(10,2);not null" json:"salary"`
	ManagerID    *int64      `json:"manager_id"`
	Manager      *Employee   `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"manager,omitempty"`
}
