package queries

import (
	"errors"
	"time"

	"rollmill/internal/pkg/errs"
	"rollmill/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery lists orders whose expected delivery has passed
// while at least one roll is still in production.
type GetOverdueOrdersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewGetOverdueOrdersQuery(now time.Time) (GetOverdueOrdersQuery, error) {
	if now.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetOverdueOrdersQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

func (q GetOverdueOrdersQuery) Now() time.Time {
	return q.now
}
