package models

import "time"

const (
	PayrollStatusPending = "PENDING"
	PayrollStatusPaid    = "PAID"
)

// Payroll is one generated record per employee per pay period. The composite
// unique index keeps duplicate-period generation rejected under concurrency.
type Payroll struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID  int64      `gorm:"not null;uniqueIndex:idx_payroll_employee_period" json:"employee_id"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	Month       string     `gorm:"size:20;not null;uniqueIndex:idx_payroll_employee_period" json:"month"`
	Year        int        `gorm:"not null;uniqueIndex:idx_payroll_employee_period" json:"year"`
	Status      string     `gorm:"size:10;not null;default:PENDING" json:"status"`
	PaymentDate *string    `gorm:"size:10" json:"payment_date"`
	TotalDays   int        `gorm:"default:30" json:"total_days"`
	PresentDays int        `gorm:"default:28" json:"present_days"`
	BaseSalary  string     `gorm:"type:decimal(10,2);not null" json:"base_salary"`
	Deductions  string     `gorm:"type:decimal(10,2);not null" json:"deductions"`
	NetSalary   string     `gorm:"type:decimal(10,2);not null" json:"net_salary"`
	GeneratedAt *time.Time `gorm:"autoCreateTime" json:"generated_at"`
}

func (Payroll) TableName() string {
	return "payroll"
}
