package services_test

import (
	"fmt"
	"testing"
	"time"

	"rollmill/internal/core/domain/model/order"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

type rollSpec struct {
	status      order.RollStatus
	grade       order.Grade
	description string
	machining   string
	number      string
}

type orderSpec struct {
	number   string
	company  string
	broker   string
	date     time.Time
	delivery time.Time
	rolls    []rollSpec
}

func buildOrder(t *testing.T, faker *gofakeit.Faker, spec orderSpec) *order.Order {
	t.Helper()

	if spec.number == "" {
		spec.number = faker.Numerify("ORD-##########-###")
	}
	if spec.company == "" {
		spec.company = faker.Company()
	}
	if spec.date.IsZero() {
		spec.date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if spec.delivery.IsZero() {
		spec.delivery = spec.date.AddDate(0, 1, 0)
	}
	if len(spec.rolls) == 0 {
		spec.rolls = []rollSpec{{status: order.RollStatusPending}}
	}

	rolls := make([]order.Roll, 0, len(spec.rolls))
	for i, rs := range spec.rolls {
		number := rs.number
		if number == "" {
			number = fmt.Sprintf("%s-R%d", spec.number, i+1)
		}
		r, err := order.NewRoll(order.RollParams{
			RollNumber:  number,
			Hardness:    faker.Numerify("## SH-C"),
			Machining:   rs.machining,
			Description: rs.description,
			Status:      rs.status,
			Grade:       rs.grade,
		})
		require.NoError(t, err)
		rolls = append(rolls, r)
	}

	o, err := order.NewOrder(order.Params{
		OrderNumber:      spec.number,
		CompanyName:      spec.company,
		Broker:           spec.broker,
		Quantity:         len(rolls),
		OrderDate:        spec.date,
		ExpectedDelivery: spec.delivery,
		Rolls:            rolls,
	})
	require.NoError(t, err)
	return o
}

func numbers(orders []*order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.OrderNumber()
	}
	return out
}
