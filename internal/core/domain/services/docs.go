// Package services provides stateless domain services that work over a
// snapshot of orders already fetched from storage.
//
// The package includes:
//   - OrderFilter: free-text search, facet filtering, sorting and pagination
//   - DashboardCalculator: order counts by stage, monthly counts, recent
//     orders, roll and grade breakdowns and overdue orders
//
// Neither service keeps state between calls, so a single value can be shared
// by concurrent requests.
package services
