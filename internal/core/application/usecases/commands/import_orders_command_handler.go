package commands

import (
	"context"

	"rollmill/internal/core/domain/model/order"
)

// ImportFailure describes one record that could not be created. Index is the
// 1-based position of the record in the batch.
type ImportFailure struct {
	Index       int
	OrderNumber string
	Err         error
}

// ImportReport lists what an import created and what it rejected.
type ImportReport struct {
	Created  []*order.Order
	Failures []ImportFailure
}

// Partial reports whether some, but not all, records were created.
func (r ImportReport) Partial() bool {
	return len(r.Created) > 0 && len(r.Failures) > 0
}

// ImportOrdersCommandHandler runs one independent create per record. There
// is no grouping transaction: records created before a failure stay created
// and the failure is listed in the report.
type ImportOrdersCommandHandler struct {
	create CreateOrderCommandHandler
}

func NewImportOrdersCommandHandler(uowFactory OrderUoWFactory) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		create: NewCreateOrderCommandHandler(uowFactory),
	}
}

// Handle returns an error only for a command that was not constructed;
// per-record problems, including a cancelled context, end up in the report.
func (h ImportOrdersCommandHandler) Handle(ctx context.Context, cmd ImportOrdersCommand) (ImportReport, error) {
	if err := cmd.Validate(); err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{
		Created: make([]*order.Order, 0, cmd.Len()),
	}

	for i, draft := range cmd.drafts {
		fail := func(err error) {
			report.Failures = append(report.Failures, ImportFailure{
				Index:       i + 1,
				OrderNumber: draft.OrderNumber,
				Err:         err,
			})
		}

		if err := ctx.Err(); err != nil {
			fail(err)
			continue
		}

		createCmd, err := NewCreateOrderCommand(draft)
		if err != nil {
			fail(err)
			continue
		}

		created, err := h.create.Handle(ctx, createCmd)
		if err != nil {
			fail(err)
			continue
		}
		report.Created = append(report.Created, created)
	}

	return report, nil
}
