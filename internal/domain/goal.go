package domain

// GoalStatus describes progress against a goal.
type GoalStatus struct {
	ProgressPercent  float64
	RemainingMinutes int
}

// EvaluateGoal computes progress and remaining minutes for the given total
// against a goal. A zero goal is disallowed by invariant but handled here as
// 0% with nothing remaining rather than dividing by zero.
func EvaluateGoal(totalMinutes, goalMinutes int) GoalStatus {
	if goalMinutes <= 0 {
		return GoalStatus{}
	}

	remaining := goalMinutes - totalMinutes
	if remaining < 0 {
		remaining = 0
	}

	return GoalStatus{
		ProgressPercent:  100 * float64(totalMinutes) / float64(goalMinutes),
		RemainingMinutes: remaining,
	}
}

// DebtShortfall returns the debt a closed day accrues: the gap between the
// goal and what was logged, never negative.
func DebtShortfall(dayMinutes, goalMinutes int) int {
	if goalMinutes <= 0 || dayMinutes >= goalMinutes {
		return 0
	}
	return goalMinutes - dayMinutes
}
