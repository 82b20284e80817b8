package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// buildLines resolves every requested line against the catalog, in the order
// supplied; the first missing item aborts the whole operation. Line name and
// price are snapshotted from the current item record, never taken from the
// caller.
func (s *OrderService) buildLines(ctx context.Context, lines []transport.OrderLineRequest) ([]models.OrderItem, float64, error) {
	var total float64
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		if line.ItemID == "" {
			return nil, 0, fmt.Errorf("%w: itemId is required", ErrValidation)
		}
		if line.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}

		item, err := s.Repo.GetItem(ctx, line.ItemID)
		if err != nil {
			if repo.IsNotFound(err) {
				return nil, 0, fmt.Errorf("%w: item with id %s not found", ErrNotFound, line.ItemID)
			}
			return nil, 0, err
		}

		subtotal := item.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ItemID:   item.ID,
			ItemName: item.Name,
			Price:    item.Price,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}

	return items, total, nil
}

func (s *OrderService) Create(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	if req.CustomerID == "" || req.CustomerName == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: customer id, customer name, and items are required", ErrValidation)
	}

	if _, err := s.Repo.GetCustomer(ctx, req.CustomerID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return nil, err
	}

	lines, total, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status must be pending, completed, or cancelled", ErrValidation)
	}

	order := &models.Order{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Items:        lines,
		Total:        total,
		Date:         time.Now().UTC(),
		Status:       status,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_created",
		"orderId": order.ID,
		"total":   order.Total,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

// ListByCustomer requires the customer to exist even when it has no orders.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	if _, err := s.Repo.GetCustomer(ctx, customerID); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

// Expand attaches the current customer and item records to a fetched order.
// This is a read-time convenience on top of the stored snapshots; a referenced
// record that has since been deleted simply comes back nil.
func (s *OrderService) Expand(ctx context.Context, order *models.Order) (*transport.OrderDetail, error) {
	detail := &transport.OrderDetail{Order: *order}

	customer, err := s.Repo.GetCustomer(ctx, order.CustomerID)
	if err == nil {
		detail.Customer = customer
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	detail.Lines = make([]transport.OrderLineDetail, len(order.Items))
	for i, line := range order.Items {
		detail.Lines[i] = transport.OrderLineDetail{OrderItem: line}
		item, err := s.Repo.GetItem(ctx, line.ItemID)
		if err == nil {
			detail.Lines[i].CurrentItem = item
		} else if !repo.IsNotFound(err) {
			return nil, err
		}
	}

	return detail, nil
}

// Update applies the patch with full re-validation: referenced records must
// exist and subtotals and the total are recomputed server-side regardless of
// what the caller sent.
func (s *OrderService) Update(ctx context.Context, id string, req transport.UpdateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update")

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	if req.CustomerID != nil {
		if *req.CustomerID == "" {
			return nil, fmt.Errorf("%w: customer id is required", ErrValidation)
		}
		if _, err := s.Repo.GetCustomer(ctx, *req.CustomerID); err != nil {
			if repo.IsNotFound(err) {
				return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
			}
			return nil, err
		}
		order.CustomerID = *req.CustomerID
	}
	if req.CustomerName != nil {
		if *req.CustomerName == "" {
			return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
		}
		order.CustomerName = *req.CustomerName
	}

	if req.Items != nil {
		if len(req.Items) == 0 {
			return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
		}
		lines, total, err := s.buildLines(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		order.Items = lines
		order.Total = total
	} else {
		// Even without new items the totals are recomputed from the stored
		// snapshots, never trusted from the caller.
		var total float64
		for i := range order.Items {
			order.Items[i].Subtotal = order.Items[i].Price * float64(order.Items[i].Quantity)
			total += order.Items[i].Subtotal
		}
		order.Total = total
	}

	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: status must be pending, completed, or cancelled", ErrValidation)
		}
		order.Status = *req.Status
	}

	if err := s.Repo.ReplaceOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_updated",
		"orderId": order.ID,
		"total":   order.Total,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return order, nil
}

// UpdateStatus changes the status only, leaving items and total untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status")

	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status must be pending, completed, or cancelled", ErrValidation)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, status); err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_status_updated",
		"orderId": order.ID,
		"status":  order.Status,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "order.delete")

	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, id, map[string]any{
		"type":    "order_deleted",
		"orderId": id,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return nil
}
