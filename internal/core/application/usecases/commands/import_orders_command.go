package commands

import (
	"errors"
	"slices"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"
	"rollmill/internal/pkg/guard"
)

var (
	ErrImportOrdersCommandIsNotConstructed = errors.New(
		"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
	)
	ErrNothingToImport = errs.NewValueIsRequiredError("orders")
)

// ImportOrdersCommand carries a batch of drafts read from a JSON or xlsx
// file. Drafts are validated one by one by the handler so that a bad record
// does not reject the whole file.
type ImportOrdersCommand struct {
	drafts []order.Draft

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand requires at least one draft.
func NewImportOrdersCommand(drafts []order.Draft) (ImportOrdersCommand, error) {
	if len(drafts) == 0 {
		return ImportOrdersCommand{}, ErrNothingToImport
	}

	return ImportOrdersCommand{
		drafts: slices.Clone(drafts),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

// Len is the number of records in the batch.
func (c ImportOrdersCommand) Len() int {
	return len(c.drafts)
}
