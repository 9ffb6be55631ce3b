package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/fanshop/internal/apperror"
	"github.com/Skotchmaster/fanshop/internal/events"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/models"
	"github.com/Skotchmaster/fanshop/internal/repo"
	"github.com/Skotchmaster/fanshop/internal/search"
)

// ItemKind names one catalog: its table, topic and search index.
type ItemKind struct {
	Name  string
	Table string
	Topic string
	Index string
}

var (
	Products = ItemKind{Name: "product", Table: models.ProductsTable, Topic: events.TopicProducts, Index: "products"}
	Merch    = ItemKind{Name: "merch", Table: models.MerchTable, Topic: events.TopicMerch, Index: "merch"}
)

type CatalogService struct {
	Kind   ItemKind
	Repo   *repo.ItemRepo
	Events events.Publisher
	// Index is optional; without it search runs against the database.
	Index search.Index
}

func (s *CatalogService) notFound() string {
	return s.Kind.Name + " not found"
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewCast("invalid id", err)
	}
	return id, nil
}

func (s *CatalogService) List(ctx context.Context, offset, limit int) (int64, []models.Item, error) {
	total, items, err := s.Repo.List(ctx, offset, limit)
	if err != nil {
		return 0, nil, translate(err, s.notFound())
	}
	return total, items, nil
}

func (s *CatalogService) Get(ctx context.Context, rawID string) (*models.Item, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, s.notFound())
	}
	return item, nil
}

func (s *CatalogService) Create(ctx context.Context, ownerID string, item *models.Item) error {
	l := logging.FromContext(ctx).With("svc", s.Kind.Name+".create")

	if owner, err := uuid.Parse(ownerID); err == nil {
		item.UserID = &owner
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		err = translate(err, s.notFound())
		l.Warn("create_error", "error", err)
		return err
	}

	s.index(ctx, item)
	s.publish(ctx, "created", item, ownerID)
	return nil
}

func (s *CatalogService) Update(ctx context.Context, rawID string, patch models.ItemPatch, actorID string) (*models.Item, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, apperror.NewBadRequest("no fields to update", nil)
	}

	item, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err, s.notFound())
	}

	s.index(ctx, item)
	s.publish(ctx, "updated", item, actorID)
	return item, nil
}

func (s *CatalogService) Delete(ctx context.Context, rawID string, actorID string) (*models.Item, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err, s.notFound())
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, s.Kind.Index, item.ID.String()); err != nil {
			logging.FromContext(ctx).Warn("search_remove_error", "index", s.Kind.Index, "id", item.ID, "error", err)
		}
	}
	s.publish(ctx, "deleted", item, actorID)
	return item, nil
}

// Search prefers the full-text index and falls back to a LIKE query when
// the index is absent or failing.
func (s *CatalogService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, apperror.NewBadRequest("query is required", nil)
	}

	if s.Index != nil {
		total, items, err := s.searchIndex(ctx, q, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_error", "index", s.Kind.Index, "error", err)
	}

	total, items, err := s.Repo.SearchLike(ctx, q, offset, limit)
	if err != nil {
		return 0, nil, translate(err, s.notFound())
	}
	return total, items, nil
}

func (s *CatalogService) searchIndex(ctx context.Context, q string, offset, limit int) (int64, []models.Item, error) {
	total, rawIDs, err := s.Index.Search(ctx, s.Kind.Index, q, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	items, err := s.Repo.GetMany(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (s *CatalogService) index(ctx context.Context, item *models.Item) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, s.Kind.Index, item); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "index", s.Kind.Index, "id", item.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, action string, item *models.Item, actorID string) {
	if s.Events == nil {
		return
	}
	ev := events.NewEvent(s.Kind.Name+"_"+action, item.ID.String(), actorID, item.Name)
	if err := s.Events.Publish(ctx, s.Kind.Topic, ev.ID, ev); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", s.Kind.Topic, "type", ev.Type, "error", err)
	}
}
