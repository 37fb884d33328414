package orderrepo

import (
	"context"
	"errors"
	"time"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique index clash.
const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a repository bound to db, which may be a
// transaction handle.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db:  db,
		now: time.Now,
	}
}

// Add inserts a new order, assigning its identifier and timestamps once the
// row is written.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := kernel.NewUUID()
	at := r.timestamp()

	dto := fromDomain(aggregate)
	dto.ID = id.Bytes()
	dto.CreatedAt = at
	dto.UpdatedAt = at

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate("add order", aggregate.OrderNumber(), err)
	}

	return aggregate.AssignIdentity(id, at)
}

// Update replaces every stored attribute of the order except its creation
// time.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	at := r.timestamp()
	dto := fromDomain(aggregate)
	dto.UpdatedAt = at

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID", "CreatedAt").
		Updates(&dto)
	if result.Error != nil {
		return translate("update order", aggregate.OrderNumber(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", aggregate.ID().String())
	}

	aggregate.Touch(at)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("id", id.String())
		}
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	return toDomain(dto)
}

// List returns all orders, newest createdAt first.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageUnavailableError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes the order row.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewStorageUnavailableError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}

	return nil
}

// timestamp matches the microsecond precision of timestamptz so a stored
// order reads back equal to the aggregate that wrote it.
func (r *GormOrderRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func translate(operation, orderNumber string, err error) error {
	if isUniqueViolation(err) {
		return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", orderNumber, err)
	}
	return errs.NewStorageUnavailableError(operation, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
