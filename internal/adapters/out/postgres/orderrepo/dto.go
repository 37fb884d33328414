// Package orderrepo persists order aggregates in postgres through GORM.
// Each order is one row of the orders table; its rolls are embedded in a
// jsonb column so an order is always read and written as a whole.
package orderrepo

import (
	"time"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row. order_number carries a unique index so
// storage rejects concurrent creates of the same number.
type OrderDTO struct {
	ID               uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	OrderNumber      string                       `gorm:"type:text;not null;uniqueIndex"`
	CompanyName      string                       `gorm:"type:text;not null"`
	Broker           string                       `gorm:"type:text"`
	Quantity         int                          `gorm:"not null"`
	OrderDate        time.Time                    `gorm:"type:timestamptz;not null"`
	ExpectedDelivery time.Time                    `gorm:"type:timestamptz;not null"`
	Notes            string                       `gorm:"type:text"`
	Rolls            datatypes.JSONSlice[RollDTO] `gorm:"type:jsonb;not null"`
	CreatedAt        time.Time                    `gorm:"type:timestamptz;index;autoCreateTime:false"`
	UpdatedAt        time.Time                    `gorm:"type:timestamptz;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// RollDTO is one element of the rolls jsonb array. JSON keys match the
// REST representation so the column can be inspected with plain SQL.
type RollDTO struct {
	RollNumber      string `json:"rollNumber"`
	Hardness        string `json:"hardness"`
	Machining       string `json:"machining,omitempty"`
	RollDescription string `json:"rollDescription,omitempty"`
	Dimensions      string `json:"dimensions,omitempty"`
	Status          string `json:"status"`
	Grade           string `json:"grade,omitempty"`
}

func fromDomain(o *order.Order) OrderDTO {
	rolls := o.Rolls()
	dtos := make([]RollDTO, 0, len(rolls))
	for _, r := range rolls {
		dtos = append(dtos, RollDTO{
			RollNumber:      r.RollNumber(),
			Hardness:        r.Hardness(),
			Machining:       r.Machining(),
			RollDescription: r.Description(),
			Dimensions:      r.Dimensions(),
			Status:          r.Status().String(),
			Grade:           r.Grade().String(),
		})
	}

	return OrderDTO{
		ID:               o.ID().Bytes(),
		OrderNumber:      o.OrderNumber(),
		CompanyName:      o.CompanyName(),
		Broker:           o.Broker(),
		Quantity:         o.Quantity(),
		OrderDate:        o.OrderDate(),
		ExpectedDelivery: o.ExpectedDelivery(),
		Notes:            o.Notes(),
		Rolls:            datatypes.NewJSONSlice(dtos),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Stored enum values are
// trusted as canonical; a row that no longer passes the invariants is
// reported rather than silently repaired.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rolls := make([]order.Roll, 0, len(dto.Rolls))
	for _, rd := range dto.Rolls {
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
		OrderNumber:      dto.OrderNumber,
		CompanyName:      dto.CompanyName,
		Broker:           dto.Broker,
		Quantity:         dto.Quantity,
		OrderDate:        dto.OrderDate.UTC(),
		ExpectedDelivery: dto.ExpectedDelivery.UTC(),
		Notes:            dto.Notes,
		Rolls:            rolls,
	}, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
