package directory

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	Departments  []string  `json:"departments,omitempty"`
	Permissions  []string  `json:"permissions,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Manager   string    `json:"manager"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	RoleAdmin     = "Admin"
	RoleHRManager = "HR Manager"
	RoleManager   = "Manager"
	RoleUser      = "User"

	// ManagerUnassigned is the sentinel stored in Department.Manager when no
	// manager has been configured.
	ManagerUnassigned = "Unassigned"

	// HRDepartmentName gates the approval stage of the scorecard workflow.
	HRDepartmentName = "HR"
)

var Roles = []string{RoleAdmin, RoleHRManager, RoleManager, RoleUser}
