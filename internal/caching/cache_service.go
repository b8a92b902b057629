package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medstock/internal/models"
)

type CacheService interface {
	// Item caching
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.SupplyItem, error)
	SetItem(ctx context.Context, item *models.SupplyItem, ttl time.Duration) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// Multi-location stock snapshot caching
	GetStockSnapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error)
	SetStockSnapshot(ctx context.Context, itemID uuid.UUID, snapshot []*models.LocationStock, ttl time.Duration) error
	DeleteStockSnapshot(ctx context.Context, itemID uuid.UUID) error

	// Pending distribution plans, parked until the operator confirms
	GetPendingDistribution(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error)
	SetPendingDistribution(ctx context.Context, pending *models.PendingDistribution, ttl time.Duration) error
	DeletePendingDistribution(ctx context.Context, planID uuid.UUID) error

	// Dashboard analytics caching
	GetOverview(ctx context.Context) (map[string]interface{}, error)
	SetOverview(ctx context.Context, overview map[string]interface{}, ttl time.Duration) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func itemKey(itemID uuid.UUID) string {
	return fmt.Sprintf("medstock:item:%s", itemID.String())
}

func snapshotKey(itemID uuid.UUID) string {
	return fmt.Sprintf("medstock:stock-snapshot:%s", itemID.String())
}

func pendingPlanKey(planID uuid.UUID) string {
	return fmt.Sprintf("medstock:pending-plan:%s", planID.String())
}

const overviewKey = "medstock:analytics:overview"

func (r *redisCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.SupplyItem, error) {
	data, err := r.client.Get(ctx, itemKey(itemID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.SupplyItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, item *models.SupplyItem, ttl time.Duration) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, itemKey(item.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.client.Del(ctx, itemKey(itemID)).Err()
}

func (r *redisCacheService) GetStockSnapshot(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	data, err := r.client.Get(ctx, snapshotKey(itemID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var snapshot []*models.LocationStock
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *redisCacheService) SetStockSnapshot(ctx context.Context, itemID uuid.UUID, snapshot []*models.LocationStock, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, snapshotKey(itemID), data, ttl).Err()
}

func (r *redisCacheService) DeleteStockSnapshot(ctx context.Context, itemID uuid.UUID) error {
	return r.client.Del(ctx, snapshotKey(itemID)).Err()
}

func (r *redisCacheService) GetPendingDistribution(ctx context.Context, planID uuid.UUID) (*models.PendingDistribution, error) {
	data, err := r.client.Get(ctx, pendingPlanKey(planID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // expired or never existed
		}
		return nil, err
	}

	var pending models.PendingDistribution
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *redisCacheService) SetPendingDistribution(ctx context.Context, pending *models.PendingDistribution, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, pendingPlanKey(pending.PlanID), data, ttl).Err()
}

func (r *redisCacheService) DeletePendingDistribution(ctx context.Context, planID uuid.UUID) error {
	return r.client.Del(ctx, pendingPlanKey(planID)).Err()
}

func (r *redisCacheService) GetOverview(ctx context.Context) (map[string]interface{}, error) {
	data, err := r.client.Get(ctx, overviewKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var overview map[string]interface{}
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, err
	}
	return overview, nil
}

func (r *redisCacheService) SetOverview(ctx context.Context, overview map[string]interface{}, ttl time.Duration) error {
	data, err := json.Marshal(overview)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, overviewKey, data, ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
