package jobs

import (
	"context"
	"fmt"
	"time"

	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/metric"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOverdueSchedule runs the check every 15 minutes.
const DefaultOverdueSchedule = "0 */15 * * * *"

const (
	overdueJobName   = "overdue_orders"
	overdueRunBudget = 30 * time.Second
	overdueLogLimit  = 20
)

type OverdueOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueOrdersQuery) ([]*order.Order, error)
}

// OverdueOrdersJob periodically reports orders whose expected delivery has
// passed while some roll is not yet dispatched.
type OverdueOrdersJob struct {
	handler  OverdueOrdersHandler
	schedule cron.Schedule
	cron     *cron.Cron
	metrics  metric.Orders
	logger   *zap.Logger
	now      func() time.Time
}

// NewOverdueOrdersJob parses expr as a cron expression with an optional
// leading seconds field, or a descriptor such as "@hourly". An empty expr
// selects DefaultOverdueSchedule.
func NewOverdueOrdersJob(
	handler OverdueOrdersHandler,
	expr string,
	metrics metric.Orders,
	logger *zap.Logger,
) (*OverdueOrdersJob, error) {
	if expr == "" {
		expr = DefaultOverdueSchedule
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid overdue check schedule %q: %w", expr, err)
	}

	return &OverdueOrdersJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		metrics:  metrics,
		logger:   logger.With(zap.String("component", "overdue_orders_job")),
		now:      time.Now,
	}, nil
}

func (j *OverdueOrdersJob) Name() string {
	return overdueJobName
}

func (j *OverdueOrdersJob) Start() error {
	j.cron.Schedule(j.schedule, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), overdueRunBudget)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("overdue orders check failed", zap.Error(err))
		}
	}))

	j.cron.Start()
	return nil
}

func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
}

// Run performs one check and returns the overdue orders it found.
func (j *OverdueOrdersJob) Run(ctx context.Context) ([]*order.Order, error) {
	query, err := queries.NewGetOverdueOrdersQuery(j.now())
	if err != nil {
		return nil, err
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	j.metrics.Overdue(len(overdue))
	if len(overdue) == 0 {
		j.logger.Debug("no overdue orders")
		return overdue, nil
	}

	numbers := make([]string, 0, min(len(overdue), overdueLogLimit))
	for _, o := range overdue[:min(len(overdue), overdueLogLimit)] {
		numbers = append(numbers, o.OrderNumber())
	}
	j.logger.Warn("orders are overdue",
		zap.Int("count", len(overdue)),
		zap.Strings("order_numbers", numbers),
	)
	return overdue, nil
}
