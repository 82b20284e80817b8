package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/transport"
	"github.com/minipos/minipos/internal/validate"
)

type CustomerService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func normalizeCustomer(req transport.CustomerRequest) transport.CustomerRequest {
	return transport.CustomerRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
}

func (s *CustomerService) Create(ctx context.Context, req transport.CustomerRequest) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "customer.create")

	req = normalizeCustomer(req)
	if fe := validate.Customer(req.Name, req.Email, req.Phone, req.Address); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, fe.Error())
	}

	if _, err := s.Repo.GetCustomerByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: customer with this email already exists", ErrConflict)
	} else if !repo.IsNotFound(err) {
		return nil, err
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicCustomerEvents, customer.ID, map[string]any{
		"type":       "customer_created",
		"customerId": customer.ID,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.Repo.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

// Update replaces the full field set and revalidates it as if on creation.
func (s *CustomerService) Update(ctx context.Context, id string, req transport.CustomerRequest) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "customer.update")

	customer, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return nil, err
	}

	req = normalizeCustomer(req)
	if fe := validate.Customer(req.Name, req.Email, req.Phone, req.Address); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, fe.Error())
	}

	if other, err := s.Repo.GetCustomerByEmail(ctx, req.Email); err == nil && other.ID != id {
		return nil, fmt.Errorf("%w: customer with this email already exists", ErrConflict)
	} else if err != nil && !repo.IsNotFound(err) {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicCustomerEvents, customer.ID, map[string]any{
		"type":       "customer_updated",
		"customerId": customer.ID,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return customer, nil
}

// Delete never cascades: orders referencing the customer keep their
// denormalized snapshot and stay readable.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "customer.delete")

	if err := s.Repo.DeleteCustomer(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return err
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicCustomerEvents, id, map[string]any{
		"type":       "customer_deleted",
		"customerId": id,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return nil
}
