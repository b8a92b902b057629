package jobs

import (
	"context"
	"log"
	"time"

	"medstock/internal/repositories"

	"github.com/google/uuid"
)

// StockAlertService scans for low-stock locations and expiring batches and
// surfaces them as alert records for the dashboard panels.
type StockAlertService struct {
	stockRepo repositories.LocationStockRepository
	batchRepo repositories.BatchRepository
	itemRepo  repositories.ItemRepository
}

// LowStockAlert flags a location at or below its reorder point.
type LowStockAlert struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	LocationID   uuid.UUID `json:"location_id"`
	LocationName string    `json:"location_name"`
	CurrentStock int       `json:"current_stock"`
	Threshold    int       `json:"threshold"`
}

// ExpiryAlert flags a batch nearing or past its expiry date.
type ExpiryAlert struct {
	BatchID    uuid.UUID `json:"batch_id"`
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name"`
	LocationID uuid.UUID `json:"location_id"`
	LotNumber  string    `json:"lot_number"`
	Quantity   int       `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
	Expired    bool      `json:"expired"`
}

func NewStockAlertService(stockRepo repositories.LocationStockRepository, batchRepo repositories.BatchRepository, itemRepo repositories.ItemRepository) *StockAlertService {
	return &StockAlertService{
		stockRepo: stockRepo,
		batchRepo: batchRepo,
		itemRepo:  itemRepo,
	}
}

// CheckLowStock lists every location currently at or below its threshold.
func (a *StockAlertService) CheckLowStock(ctx context.Context, limit int) ([]LowStockAlert, error) {
	if limit <= 0 {
		limit = 200
	}

	stocks, err := a.stockRepo.ListLowStock(ctx, limit)
	if err != nil {
		log.Printf("Failed to list low stock rows: %v", err)
		return nil, err
	}

	var alerts []LowStockAlert
	for _, stock := range stocks {
		item, err := a.itemRepo.GetByID(ctx, stock.ItemID)
		if err != nil {
			log.Printf("Failed to get item %s: %v", stock.ItemID.String(), err)
			continue
		}

		alerts = append(alerts, LowStockAlert{
			ItemID:       stock.ItemID,
			ItemName:     item.Name,
			LocationID:   stock.LocationID,
			LocationName: stock.LocationName,
			CurrentStock: stock.Quantity,
			Threshold:    stock.MinimumThreshold,
		})
	}

	return alerts, nil
}

// CheckExpiringBatches lists batches expiring inside the window, including
// already-expired ones still holding stock.
func (a *StockAlertService) CheckExpiringBatches(ctx context.Context, window time.Duration, limit int) ([]ExpiryAlert, error) {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	if limit <= 0 {
		limit = 200
	}

	now := time.Now()
	batches, err := a.batchRepo.ListExpiringBefore(ctx, now.Add(window), limit)
	if err != nil {
		log.Printf("Failed to list expiring batches: %v", err)
		return nil, err
	}

	var alerts []ExpiryAlert
	for _, batch := range batches {
		item, err := a.itemRepo.GetByID(ctx, batch.ItemID)
		if err != nil {
			log.Printf("Failed to get item %s: %v", batch.ItemID.String(), err)
			continue
		}

		alerts = append(alerts, ExpiryAlert{
			BatchID:    batch.ID,
			ItemID:     batch.ItemID,
			ItemName:   item.Name,
			LocationID: batch.LocationID,
			LotNumber:  batch.LotNumber,
			Quantity:   batch.Quantity,
			ExpiryDate: batch.ExpiryDate,
			Expired:    batch.IsExpired(now),
		})
	}

	return alerts, nil
}

// LogAlerts writes the current alert state to the log; the scheduler runs
// this on a fixed interval.
func (a *StockAlertService) LogAlerts(ctx context.Context) {
	low, err := a.CheckLowStock(ctx, 0)
	if err == nil {
		if len(low) == 0 {
			log.Println("No low stock alerts")
		}
		for _, alert := range low {
			log.Printf("- Low stock: '%s' at %s has %d units (threshold: %d)",
				alert.ItemName, alert.LocationName, alert.CurrentStock, alert.Threshold)
		}
	}

	expiring, err := a.CheckExpiringBatches(ctx, 0, 0)
	if err == nil {
		for _, alert := range expiring {
			state := "expires"
			if alert.Expired {
				state = "EXPIRED"
			}
			log.Printf("- Batch %s of '%s' %s %s (%d units)",
				alert.LotNumber, alert.ItemName, state, alert.ExpiryDate.Format("2006-01-02"), alert.Quantity)
		}
	}
}
