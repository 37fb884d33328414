package order

import "time"

// RollDraft is an unvalidated roll as received from a client, a JSON file
// or a spreadsheet row.
type RollDraft struct {
	RollNumber      string
	Hardness        string
	Machining       string
	RollDescription string
	Dimensions      string
	Status          string
	Grade           string
}

// Draft is an unvalidated order. All values are raw text so every entry path
// shares the same parsing rules; Quantity is the decimal text of the number
// sent by the client.
type Draft struct {
	OrderNumber      string
	CompanyName      string
	Broker           string
	Quantity         string
	OrderDate        string
	ExpectedDelivery string
	Notes            string
	Rolls            []RollDraft
}

// Patch is an unvalidated partial update. Nil fields are left untouched.
// A non-nil Rolls replaces the whole roll list.
type Patch struct {
	OrderNumber      *string
	CompanyName      *string
	Broker           *string
	Quantity         *string
	OrderDate        *string
	ExpectedDelivery *string
	Notes            *string
	Rolls            *[]RollDraft
}

// Changes is a validated Patch, ready for Order.Apply.
type Changes struct {
	orderNumber      *string
	companyName      *string
	broker           *string
	quantity         *int
	orderDate        *time.Time
	expectedDelivery *time.Time
	notes            *string
	rolls            []Roll
}

// OrderNumber returns the new order number, if the patch changes it.
func (c Changes) OrderNumber() (string, bool) {
	if c.orderNumber == nil {
		return "", false
	}
	return *c.orderNumber, true
}
