package models

const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceHalfDay = "HALF_DAY"
)

// Attendance holds one calendar-day entry per employee. The composite unique
// index keeps the one-record-per-day guarantee under concurrent clock-ins.
type Attendance struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	ClockIn    string    `gorm:"size:8;not null" json:"clock_in"`
	ClockOut   *string   `gorm:"size:8" json:"clock_out"`
	Status     string    `gorm:"size:10;not null" json:"status"`
}

func (Attendance) TableName() string {
	return "attendance"
}
