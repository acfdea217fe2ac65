package scheduler

import (
	"time"

	"github.com/craftify/craftify-backend/internal/app/repository"
	"github.com/craftify/craftify-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartScheduler clears cart lines that have sat untouched past the
// configured age.
type CartScheduler struct {
	cron          *cron.Cron
	cartRepo      repository.CartRepository
	staleCartDays int
}

func NewCartScheduler(cartRepo repository.CartRepository, staleCartDays int) *CartScheduler {
	return &CartScheduler{
		cron:          cron.New(),
		cartRepo:      cartRepo,
		staleCartDays: staleCartDays,
	}
}

// Start schedules the cleanup job to run daily at 04:00
func (s *CartScheduler) Start() error {
	if s.staleCartDays <= 0 {
		logger.Info("Stale cart cleanup disabled", nil)
		return nil
	}

	_, err := s.cron.AddFunc("0 4 * * *", s.runCleanup)
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started (daily at 4:00 AM)", map[string]interface{}{
		"stale_cart_days": s.staleCartDays,
	})
	return nil
}

func (s *CartScheduler) runCleanup() {
	logger.Info("Starting scheduled stale cart cleanup", map[string]interface{}{
		"stale_cart_days": s.staleCartDays,
	})

	cutoff := time.Now().AddDate(0, 0, -s.staleCartDays)
	carts, err := s.cartRepo.FindStale(cutoff)
	if err != nil {
		logger.Error("Failed to find stale carts", err)
		return
	}

	cleared := 0
	for _, cart := range carts {
		if err := s.cartRepo.Clear(cart.ID); err != nil {
			logger.Error("Failed to clear stale cart", err, map[string]interface{}{
				"cart_id": cart.ID,
			})
			continue
		}
		cleared++
	}

	logger.Info("Stale cart cleanup finished", map[string]interface{}{
		"carts_cleared": cleared,
	})
}

// Stop stops the scheduler
func (s *CartScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
}
