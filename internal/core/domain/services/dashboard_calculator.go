package services

import (
	"slices"
	"time"

	"rollmill/internal/core/domain/model/order"
)

// RecentOrdersLimit is the length of DashboardStats.RecentOrders.
const RecentOrdersLimit = 5

// DashboardStats summarises the whole order collection.
//
// Pending, InProgress and Completed count orders by their stage, which is
// derived from roll statuses. No monetary figures exist: orders carry no
// price.
type DashboardStats struct {
	Total           int
	Pending         int
	InProgress      int
	Completed       int
	OrdersThisMonth int
	RecentOrders    []*order.Order
	RollsByStatus   map[order.RollStatus]int
	OrdersByGrade   map[order.Grade]int
	Overdue         []*order.Order
}

// DashboardCalculator computes DashboardStats from a snapshot of orders.
type DashboardCalculator struct{}

func NewDashboardCalculator() DashboardCalculator {
	return DashboardCalculator{}
}

// Compute is evaluated at now. The "this month" window uses now's calendar
// month and year in UTC. An order counts once per grade its rolls carry.
func (c DashboardCalculator) Compute(orders []*order.Order, now time.Time) DashboardStats {
	now = now.UTC()
	stats := DashboardStats{
		Total:         len(orders),
		RollsByStatus: make(map[order.RollStatus]int, len(order.RollStatuses())),
		OrdersByGrade: make(map[order.Grade]int),
	}
	for _, s := range order.RollStatuses() {
		stats.RollsByStatus[s] = 0
	}

	for _, o := range orders {
		switch o.Stage() {
		case order.StagePending:
			stats.Pending++
		case order.StageInProgress:
			stats.InProgress++
		case order.StageCompleted:
			stats.Completed++
		}

		od := o.OrderDate().UTC()
		if od.Year() == now.Year() && od.Month() == now.Month() {
			stats.OrdersThisMonth++
		}

		seenGrades := make(map[order.Grade]bool)
		for _, r := range o.Rolls() {
			stats.RollsByStatus[r.Status()]++
			if g := r.Grade(); g != order.GradeNone && !seenGrades[g] {
				seenGrades[g] = true
				stats.OrdersByGrade[g]++
			}
		}
	}

	stats.RecentOrders = c.Recent(orders, RecentOrdersLimit)
	stats.Overdue = c.Overdue(orders, now)

	return stats
}

// Recent returns up to limit orders, newest orderDate first.
func (c DashboardCalculator) Recent(orders []*order.Order, limit int) []*order.Order {
	sorted := slices.Clone(orders)
	SortByOrderDateDesc(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Overdue returns the orders whose expected delivery has passed without all
// rolls being dispatched, earliest expected delivery first.
func (c DashboardCalculator) Overdue(orders []*order.Order, now time.Time) []*order.Order {
	var out []*order.Order
	for _, o := range orders {
		if o.IsOverdue(now) {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b *order.Order) int {
		return a.ExpectedDelivery().Compare(b.ExpectedDelivery())
	})
	return out
}
