package queries

import (
	"errors"
	"time"

	"rollmill/internal/pkg/errs"
	"rollmill/internal/pkg/guard"
)

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

// GetDashboardQuery computes dashboard statistics as of a point in time.
type GetDashboardQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetDashboardQuery(now time.Time) (GetDashboardQuery, error) {
	if now.IsZero() {
		return GetDashboardQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetDashboardQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

func (q GetDashboardQuery) Now() time.Time {
	return q.now
}
