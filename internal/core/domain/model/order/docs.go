// Package order models customer orders placed with the rolling mill.
//
// The package includes:
//   - Order: the aggregate root holding order details and its rolls
//   - Roll: a manufactured piece, embedded in its order
//   - RollStatus and Grade: the closed enumerations of the roll workflow and
//     material grades
//   - Draft, Patch and the validators that turn raw client input into an
//     Order or a set of Changes, reporting every violation at once
//   - NumberGenerator: ORD-<millis>-<n> order number suggestions
//
// Key business rules:
//   - orderNumber is unique (enforced by storage, reported as
//     DuplicateOrderNumberError)
//   - an order has at least one roll; every roll has rollNumber and hardness
//   - status and grade must be members of their enumeration; they are
//     matched case-insensitively and stored in canonical spelling
//   - rollDescription is free text; DescriptionSuggestions is only a hint
//   - the order stage is derived from roll statuses: pending, inProgress or
//     completed
package order
