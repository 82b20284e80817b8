package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/logging"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/service/search"
	"github.com/minipos/minipos/internal/transport"
	"github.com/minipos/minipos/internal/validate"
)

type ItemService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Index    *search.Index
}

func (s *ItemService) Create(ctx context.Context, req transport.ItemRequest) (*models.Item, error) {
	l := logging.FromContext(ctx).With("svc", "item.create")

	name := strings.TrimSpace(req.Name)
	if fe := validate.Item(name, req.Price); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, fe.Error())
	}

	item := &models.Item{
		Name:  name,
		Price: req.Price,
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.Index.IndexItem(ctx, item); err != nil {
		l.Warn("index item failed", "itemId", item.ID, "error", err)
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicCatalogEvents, item.ID, map[string]any{
		"type":   "item_created",
		"itemId": item.ID,
		"name":   item.Name,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return item, nil
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListItems(ctx)
}

func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: item not found", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, id string, req transport.ItemRequest) (*models.Item, error) {
	l := logging.FromContext(ctx).With("svc", "item.update")

	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: item not found", ErrNotFound)
		}
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if fe := validate.Item(name, req.Price); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, fe.Error())
	}

	item.Name = name
	item.Price = req.Price

	if err := s.Repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	if err := s.Index.IndexItem(ctx, item); err != nil {
		l.Warn("index item failed", "itemId", item.ID, "error", err)
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicCatalogEvents, item.ID, map[string]any{
		"type":   "item_updated",
		"itemId": item.ID,
		"name":   item.Name,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "item.delete")

	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: item not found", ErrNotFound)
		}
		return err
	}

	if err := s.Index.DeleteItem(ctx, id); err != nil {
		l.Warn("delete item from index failed", "itemId", id, "error", err)
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicCatalogEvents, id, map[string]any{
		"type":   "item_deleted",
		"itemId": id,
	}); err != nil {
		l.Warn("event publish failed", "error", err)
	}

	return nil
}

func (s *ItemService) Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	if !s.Index.Enabled() {
		return 0, nil, fmt.Errorf("%w: search is not configured", ErrValidation)
	}
	return s.Index.Search(ctx, query, from, size)
}
