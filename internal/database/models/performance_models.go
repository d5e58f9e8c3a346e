package models

import "time"

const (
	GoalStatusPending    = "PENDING"
	GoalStatusInProgress = "IN_PROGRESS"
	GoalStatusCompleted  = "COMPLETED"
)

type PerformanceReview struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID int64     `gorm:"index;not null" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ReviewerID int64     `gorm:"not null" json:"reviewer_id"`
	Reviewer   *Employee `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comments   string    `gorm:"type:text" json:"comments"`
	ReviewDate string    `gorm:"size:10;not null" json:"review_date"`
}

type Goal struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID  int64      `gorm:"index;not null" json:"employee_id"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:15;not null;default:PENDING" json:"status"`
	Deadline    *string    `gorm:"size:10" json:"deadline"`
	CreatedAt   *time.Time `gorm:"autoCreateTime" json:"created_at"`
}
