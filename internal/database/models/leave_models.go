package models

const (
	LeaveTypeCasual = "CASUAL"
	LeaveTypeSick   = "SICK"
	LeaveTypePaid   = "PAID"
	LeaveTypeShort  = "SHORT"

	LeaveSessionFirstHalf  = "FIRST_HALF"
	LeaveSessionSecondHalf = "SECOND_HALF"

	LeaveStatusPending  = "PENDING"
	LeaveStatusApproved = "APPROVED"
	LeaveStatusRejected = "REJECTED"
)

type LeaveRequest struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID    int64     `gorm:"index;not null" json:"employee_id"`
	Employee      *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	LeaveType     string    `gorm:"size:10;not null" json:"leave_type"`
	Session       *string   `gorm:"size:15" json:"session"`
	StartDate     string    `gorm:"size:10;not null" json:"start_date"`
	EndDate       string    `gorm:"size:10;not null" json:"end_date"`
	Status        string    `gorm:"size:10;not null;default:PENDING" json:"status"`
	ApprovedBy    *int64    `json:"approved_by"`
	Approver      *Employee `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	Reason        string    `gorm:"type:text" json:"reason"`
	AdminComments *string   `gorm:"type:text" json:"admin_comments"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
