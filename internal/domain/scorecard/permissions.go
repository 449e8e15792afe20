package scorecard

import "kpiboard/internal/domain/directory"

// Evaluator answers whether a user may enter, submit, or approve KPI values
// for a scorecard. It works over a department snapshot because manager
// assignments are free-text names resolved through
// directory.ManagerNameMatches. The checks are independent booleans; a user
// can hold several of them at once.
type Evaluator struct {
	Departments []directory.Department
}

func NewEvaluator(departments []directory.Department) Evaluator {
	return Evaluator{Departments: departments}
}

// CanEnter reports whether user may fill in KPI values for sc.
func (e Evaluator) CanEnter(user directory.User, sc Scorecard) bool {
	if sc.ResponsiblePerson != "" && sc.ResponsiblePerson == user.Name {
		return true
	}
	if user.Role == directory.RoleManager && e.managesDepartment(user, sc.Department) {
		return true
	}
	if user.Role == directory.RoleHRManager {
		return true
	}
	// Managers sitting in HR get entry rights even over other departments.
	if user.Role == directory.RoleManager && user.Department == directory.HRDepartmentName {
		return true
	}
	return user.Role == directory.RoleAdmin
}

// CanSubmit reports whether user may submit a filled scorecard for approval.
// The HR Manager role alone does not grant submit rights; this asymmetry with
// CanEnter is deliberate and covered by tests.
func (e Evaluator) CanSubmit(user directory.User, sc Scorecard) bool {
	if user.Role == directory.RoleManager && e.managesDepartment(user, sc.Department) {
		return true
	}
	if sc.ResponsiblePerson != "" && sc.ResponsiblePerson == user.Name {
		return true
	}
	return user.Role == directory.RoleAdmin
}

// CanApprove reports whether user may approve a submitted scorecard. Admins
// carry no approval override here; see DESIGN.md before "fixing" that.
func (e Evaluator) CanApprove(user directory.User, _ Scorecard) bool {
	if user.Role == directory.RoleHRManager {
		return true
	}
	return user.Role == directory.RoleManager && user.Department == directory.HRDepartmentName
}

func (e Evaluator) managesDepartment(user directory.User, departmentName string) bool {
	dept := directory.FindDepartment(e.Departments, departmentName)
	if dept == nil {
		return false
	}
	return directory.ManagerNameMatches(dept.Manager, user.Name)
}
