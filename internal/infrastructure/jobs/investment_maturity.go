package jobs

import (
	"context"
	"log"
	"time"
)

// MaturedCompleter completes matured investments in batches
type MaturedCompleter interface {
	CompleteMatured(ctx context.Context, now time.Time, batchSize int) (int, error)
}

// InvestmentMaturityJob periodically completes investments past their end
// date: principal and full-duration earnings are credited and capacity
// released.
type InvestmentMaturityJob struct {
	investments MaturedCompleter
	interval    time.Duration
	batchSize   int
	stop        chan struct{}
}

func NewInvestmentMaturityJob(investments MaturedCompleter, interval time.Duration, batchSize int) *InvestmentMaturityJob {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &InvestmentMaturityJob{
		investments: investments,
		interval:    interval,
		batchSize:   batchSize,
		stop:        make(chan struct{}),
	}
}

func (j *InvestmentMaturityJob) Start(ctx context.Context) {
	log.Println("🕐 Starting investment maturity job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Investment maturity job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Investment maturity job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *InvestmentMaturityJob) Stop() {
	close(j.stop)
}

func (j *InvestmentMaturityJob) sweep(ctx context.Context) {
	completed, err := j.investments.CompleteMatured(ctx, time.Now(), j.batchSize)
	if err != nil {
		log.Printf("❌ Error sweeping matured investments: %v", err)
		return
	}
	if completed > 0 {
		log.Printf("✅ Completed %d matured investments", completed)
	}
}
