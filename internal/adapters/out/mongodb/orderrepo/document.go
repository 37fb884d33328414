// Package orderrepo persists order aggregates as documents of the orders
// collection, rolls embedded.
package orderrepo

import (
	"time"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
)

// CollectionName is the collection holding orders.
const CollectionName = "orders"

// OrderDocument is the stored form of an order. The identifier is kept as
// the canonical uuid string in _id.
type OrderDocument struct {
	ID               string         `bson:"_id"`
	OrderNumber      string         `bson:"orderNumber"`
	CompanyName      string         `bson:"companyName"`
	Broker           string         `bson:"broker,omitempty"`
	Quantity         int            `bson:"quantity"`
	OrderDate        time.Time      `bson:"orderDate"`
	ExpectedDelivery time.Time      `bson:"expectedDelivery"`
	Notes            string         `bson:"notes,omitempty"`
	Rolls            []RollDocument `bson:"rolls"`
	CreatedAt        time.Time      `bson:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt"`
}

type RollDocument struct {
	RollNumber      string `bson:"rollNumber"`
	Hardness        string `bson:"hardness"`
	Machining       string `bson:"machining,omitempty"`
	RollDescription string `bson:"rollDescription,omitempty"`
	Dimensions      string `bson:"dimensions,omitempty"`
	Status          string `bson:"status"`
	Grade           string `bson:"grade,omitempty"`
}

func fromDomain(o *order.Order) OrderDocument {
	rolls := o.Rolls()
	docs := make([]RollDocument, 0, len(rolls))
	for _, r := range rolls {
		docs = append(docs, RollDocument{
			RollNumber:      r.RollNumber(),
			Hardness:        r.Hardness(),
			Machining:       r.Machining(),
			RollDescription: r.Description(),
			Dimensions:      r.Dimensions(),
			Status:          r.Status().String(),
			Grade:           r.Grade().String(),
		})
	}

	return OrderDocument{
		ID:               o.ID().String(),
		OrderNumber:      o.OrderNumber(),
		CompanyName:      o.CompanyName(),
		Broker:           o.Broker(),
		Quantity:         o.Quantity(),
		OrderDate:        o.OrderDate().Truncate(time.Millisecond),
		ExpectedDelivery: o.ExpectedDelivery().Truncate(time.Millisecond),
		Notes:            o.Notes(),
		Rolls:            docs,
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func toDomain(doc OrderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	rolls := make([]order.Roll, 0, len(doc.Rolls))
	for _, rd := range doc.Rolls {
		r, rollErr := order.NewRoll(order.RollParams{
			RollNumber:  rd.RollNumber,
			Hardness:    rd.Hardness,
			Machining:   rd.Machining,
			Description: rd.RollDescription,
			Dimensions:  rd.Dimensions,
			Status:      order.RollStatus(rd.Status),
			Grade:       order.Grade(rd.Grade),
		})
		if rollErr != nil {
			return nil, rollErr
		}
		rolls = append(rolls, r)
	}

	return order.RestoreOrder(id, order.Params{
		OrderNumber:      doc.OrderNumber,
		CompanyName:      doc.CompanyName,
		Broker:           doc.Broker,
		Quantity:         doc.Quantity,
		OrderDate:        doc.OrderDate.UTC(),
		ExpectedDelivery: doc.ExpectedDelivery.UTC(),
		Notes:            doc.Notes,
		Rolls:            rolls,
	}, doc.CreatedAt.UTC(), doc.UpdatedAt.UTC())
}
