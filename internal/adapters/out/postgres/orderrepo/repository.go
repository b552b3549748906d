package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IDSequence hands out order ids.
const IDSequence = "order_id_seq"

// Migrate creates the id sequence and the order tables.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS " + IDSequence).Error; err != nil {
		return fmt.Errorf("create %s: %w", IDSequence, err)
	}
	return db.AutoMigrate(&OrderDTO{}, &OrderItemDTO{}, &PaymentDTO{}, &DeliveryDTO{}, &PickupDTO{})
}

// GormOrderRepository implements ports.OrderRepository and ports.OrderReader.
// Bound to a transaction it is the write side; bound to the plain
// connection it only sees committed rows.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('" + IDSequence + "')").Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// Add inserts the order with all of its records.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Commit updates the order row only while it is still at expectedVersion,
// then replaces the items and upserts the records.
func (r *GormOrderRepository) Commit(ctx context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Version() != expectedVersion+1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf(
			"aggregate is at version %d, expected %d", aggregate.Version(), expectedVersion+1))
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"status":             dto.Status,
			"total_price":        dto.TotalPrice,
			"estimated_ready_at": dto.EstimatedReadyAt,
			"version":            dto.Version,
			"updated_at":         dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflict(ctx, dto.ID, expectedVersion)
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	var records []any
	if dto.Payment != nil {
		records = append(records, dto.Payment)
	}
	if dto.Delivery != nil {
		records = append(records, dto.Delivery)
	}
	if dto.Pickup != nil {
		records = append(records, dto.Pickup)
	}
	for _, record := range records {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error; err != nil {
			return err
		}
	}
	return nil
}

// conflict explains why the conditional update matched nothing.
func (r *GormOrderRepository) conflict(ctx context.Context, id, expectedVersion int64) error {
	var stored OrderDTO
	err := r.db.WithContext(ctx).Select("id", "version").Take(&stored, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("orderId", id)
	}
	if err != nil {
		return err
	}
	return errs.NewVersionConflictError(id, expectedVersion, stored.Version)
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.withRecords(ctx).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListActive returns orders that are neither COMPLETED nor CANCELLED, oldest first.
func (r *GormOrderRepository) ListActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withRecords(ctx).
		Where("status NOT IN ?", []int{int(status.OrderCompleted), int(status.OrderCancelled)}).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("restore order %d: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withRecords(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Payment").
		Preload("Delivery").
		Preload("Pickup")
}
