package order

// Stage is the order-level progress derived from roll statuses.
type Stage string

const (
	StagePending    Stage = "pending"
	StageInProgress Stage = "inProgress"
	StageCompleted  Stage = "completed"
)

// StageOf is pending when every roll is Pending, completed when every roll
// is dispached, and inProgress otherwise.
func StageOf(rolls []Roll) Stage {
	if len(rolls) == 0 {
		return StagePending
	}

	pending, dispatched := 0, 0
	for _, r := range rolls {
		switch r.status {
		case RollStatusPending:
			pending++
		case RollStatusDispatched:
			dispatched++
		}
	}

	switch {
	case pending == len(rolls):
		return StagePending
	case dispatched == len(rolls):
		return StageCompleted
	default:
		return StageInProgress
	}
}
