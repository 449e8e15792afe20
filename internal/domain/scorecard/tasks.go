package scorecard

import (
	"fmt"
	"strings"
	"time"

	"kpiboard/internal/domain/directory"
)

// TaskInputs is one immutable snapshot of everything the engine reads. The
// caller fetches all collections before invoking so the derivation never sees
// a partially updated view.
type TaskInputs struct {
	Scorecards  []Scorecard
	Users       []directory.User
	Departments []directory.Department
	Assignments []Assignment
	Results     []Result
	Month       int
	Year        int
	Now         time.Time

	// Viewer scopes fill tasks to what the session user may enter. Nil
	// generates the complete, permission-agnostic task list.
	Viewer *directory.User
}

// DeriveTasksForMonth produces the fill/submit/approve lifecycle tasks for
// every scorecard in one period. It is a pure function of its inputs:
// repeated calls over the same snapshot yield identical task sets, and ids
// are deduplicated within a call. Missing references (unresolvable
// responsible user, unconfigured manager, absent HR department) skip the
// affected task rather than failing.
func DeriveTasksForMonth(in TaskInputs) []Task {
	eval := NewEvaluator(in.Departments)
	seen := make(map[string]struct{})
	var tasks []Task
	add := func(task Task) {
		if _, ok := seen[task.ID]; ok {
			return
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}

	for _, sc := range in.Scorecards {
		responsible := ResolveResponsible(sc, in.Assignments, in.Users)
		if responsible == nil {
			continue
		}

		fillDue := time.Date(in.Year, time.Month(in.Month), FillDueDay, 0, 0, 0, 0, time.UTC)
		result := ResultFor(in.Results, sc.ID, in.Month, in.Year)

		if in.Viewer == nil || eval.CanEnter(*in.Viewer, sc) {
			add(Task{
				ID:          taskID(stageFill, sc.ID, responsible.ID, in.Month, in.Year),
				Title:       "Fill scorecard: " + sc.Name,
				Department:  sc.Department,
				Date:        fillDue,
				Status:      taskStatus(result, fillDue, in.Now),
				Assigned:    responsible.Name,
				Type:        TaskTypeFill,
				PeriodMonth: in.Month,
				PeriodYear:  in.Year,
			})
		}

		if dept := directory.FindDepartment(in.Departments, sc.Department); dept != nil {
			manager := strings.TrimSpace(dept.Manager)
			if manager != "" && manager != directory.ManagerUnassigned {
				submitDue := fillDue.AddDate(0, 0, SubmitDueOffsetDays)
				add(Task{
					ID:          taskID(stageSubmit, sc.ID, manager, in.Month, in.Year),
					Title:       "Submit scorecard: " + sc.Name,
					Department:  sc.Department,
					Date:        submitDue,
					Status:      taskStatus(result, submitDue, in.Now),
					Assigned:    manager,
					Type:        TaskTypeSubmit,
					PeriodMonth: in.Month,
					PeriodYear:  in.Year,
				})
			}
		}

		if directory.FindDepartment(in.Departments, directory.HRDepartmentName) != nil {
			approveDue := fillDue.AddDate(0, 0, ApproveDueOffsetDays)
			add(Task{
				ID:          taskID(stageApprove, sc.ID, ApproveAssignee, in.Month, in.Year),
				Title:       "Approve scorecard: " + sc.Name,
				Department:  sc.Department,
				Date:        approveDue,
				Status:      taskStatus(result, approveDue, in.Now),
				Assigned:    ApproveAssignee,
				Type:        TaskTypeApprove,
				PeriodMonth: in.Month,
				PeriodYear:  in.Year,
			})
		}
	}
	return tasks
}

func taskID(stage, scorecardID, assigneeKey string, month, year int) string {
	key := strings.ReplaceAll(strings.TrimSpace(assigneeKey), " ", "_")
	return fmt.Sprintf("scorecard_%s_%s_%s_%d_%d", stage, scorecardID, key, month, year)
}

// ResultFor returns the single result row for a period, or nil.
func ResultFor(results []Result, scorecardID string, month, year int) *Result {
	for i := range results {
		if results[i].ScorecardID == scorecardID && results[i].PeriodMonth == month && results[i].PeriodYear == year {
			return &results[i]
		}
	}
	return nil
}

// NormalizedStatus returns a result's effective status: an explicit status
// wins, a missing status with a submission timestamp counts as submitted,
// anything else is a draft.
func NormalizedStatus(r *Result) string {
	if r == nil {
		return ""
	}
	if r.Status != "" {
		return r.Status
	}
	if r.SubmittedAt != nil {
		return ResultStatusSubmitted
	}
	return ResultStatusDraft
}

// taskStatus maps the period's one result onto a task. All three lifecycle
// tasks read the same row; they are not independently tracked. Late applies
// only while no result exists at all.
func taskStatus(result *Result, due, now time.Time) string {
	if result == nil {
		if due.Before(now) {
			return TaskStatusLate
		}
		return TaskStatusPending
	}
	switch NormalizedStatus(result) {
	case ResultStatusSubmitted:
		return TaskStatusSubmitted
	case ResultStatusApproved:
		return TaskStatusApproved
	default:
		return TaskStatusPending
	}
}
