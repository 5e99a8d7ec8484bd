package services

import (
	"context"
	"errors"
	"time"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/infra/cache"
	"github.com/Axalon174/coffee-shop-manager/internal/logger"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	menuCacheKey   = "pos:menu"
	staffCacheKey  = "pos:staff"
	tablesCacheKey = "pos:tables"

	defaultCacheTTL = time.Minute
)

var ErrMenuItemNotFound = errors.New("menu item not found")

var _ repository.TableRepository = (*CatalogService)(nil)

// CatalogService serves menu, staff and tables through a read-through
// cache. Cache failures fall back to the repositories.
type CatalogService struct {
	catalog repository.CatalogRepository
	tables  repository.TableRepository
	cache   cache.Cache
	ttl     time.Duration
	log     *logger.Logger

	group singleflight.Group
}

func NewCatalogService(catalog repository.CatalogRepository, tables repository.TableRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogService{catalog: catalog, tables: tables, cache: c, ttl: ttl, log: log}
}

func (s *CatalogService) ListMenu(ctx context.Context) ([]domain.MenuItem, error) {
	return readThrough(ctx, s, menuCacheKey, s.catalog.ListActiveMenu)
}

func (s *CatalogService) MenuItem(ctx context.Context, id uint64) (domain.MenuItem, error) {
	menu, err := s.ListMenu(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}
	for _, item := range menu {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.MenuItem{}, ErrMenuItemNotFound
}

func (s *CatalogService) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return readThrough(ctx, s, staffCacheKey, s.catalog.ListStaff)
}

func (s *CatalogService) ActiveStaff(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Staff, 0, len(staff))
	for _, st := range staff {
		if st.IsActive {
			active = append(active, st)
		}
	}
	return active, nil
}

func (s *CatalogService) ListTables(ctx context.Context) ([]domain.Table, error) {
	return readThrough(ctx, s, tablesCacheKey, s.tables.ListTables)
}

func (s *CatalogService) UpdateTableStatus(ctx context.Context, id uint64, status domain.TableStatus) error {
	if err := s.tables.UpdateTableStatus(ctx, id, status); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, tablesCacheKey); err != nil {
		s.log.Warn("cache_invalidate_failed", "tables cache not invalidated", "key", tablesCacheKey, "error", err.Error())
	}
	return nil
}

// Warmup loads menu, staff and tables into the cache in parallel.
func (s *CatalogService) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.ListMenu(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.ListStaff(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.ListTables(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("catalog_warmup_failed", "catalog warmup failed", err)
		return err
	}
	s.log.Info("catalog_warmup_done", "catalog cache warmed")
	return nil
}

func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache_get_failed", "cache read failed, using store", "key", key, "error", err.Error())
	} else if found {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		list, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []T{}
		}
		if err := s.cache.Set(ctx, key, list, s.ttl); err != nil {
			s.log.Warn("cache_set_failed", "cache write failed", "key", key, "error", err.Error())
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	list := v.([]T)
	out := make([]T, len(list))
	copy(out, list)
	return out, nil
}
