package queries

import (
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// orderSummaryColumns is the column list every summary query selects, in the
// order scanOrderSummaries expects.
const orderSummaryColumns = `
	id,
	customer_name,
	status,
	cancelled_from,
	order_type,
	value_cents,
	delivery_fee_cents,
	created_at,
	estimated_delivery_at,
	driver_id
`

// scanOrderSummaries drains rows selected with orderSummaryColumns into
// summary responses, deriving the display metadata and progress percent.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummaryResponse, error) {
	summaries := make([]OrderSummaryResponse, 0)

	for rows.Next() {
		var (
			id                  uuid.UUID
			customerName        string
			status              int
			cancelledFrom       sql.NullInt64
			orderType           string
			valueCents          int64
			deliveryFeeCents    int64
			createdAt           time.Time
			estimatedDeliveryAt time.Time
			driverID            *uuid.UUID
		)

		err := rows.Scan(
			&id,
			&customerName,
			&status,
			&cancelledFrom,
			&orderType,
			&valueCents,
			&deliveryFeeCents,
			&createdAt,
			&estimatedDeliveryAt,
			&driverID,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orderStatus := order.Status(status)
		if err = orderStatus.Validate(); err != nil {
			return nil, err
		}

		progressFrom := orderStatus
		if orderStatus == order.Cancelled && cancelledFrom.Valid {
			progressFrom = order.Status(cancelledFrom.Int64)
		}
		percent, _ := progressFrom.ProgressPercent()

		summary := OrderSummaryResponse{
			ID:                  orderID,
			CustomerName:        customerName,
			Status:              orderStatus,
			StatusLabel:         orderStatus.Display().Label,
			StatusColor:         orderStatus.Display().Color,
			OrderType:           orderType,
			ValueCents:          valueCents,
			DeliveryFeeCents:    deliveryFeeCents,
			CreatedAt:           createdAt,
			EstimatedDeliveryAt: estimatedDeliveryAt,
			ProgressPercent:     percent,
		}

		if driverID != nil {
			dID, driverErr := kernel.UUIDFromBytes((*driverID)[:])
			if driverErr != nil {
				return nil, driverErr
			}
			summary.DriverID = &dID
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
