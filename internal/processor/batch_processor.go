package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"balimatch/server/config"
	"balimatch/server/internal/database"
	"balimatch/server/internal/models"
	"balimatch/server/internal/queue"
)

// BatchProcessor drains the listing queue into the store with transactional
// upserts and bounded retry.
type BatchProcessor struct {
	db        *gorm.DB
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.ListingQueue
	batches   chan []*models.Listing
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewBatchProcessor(db *gorm.DB, queue *queue.ListingQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	buffer := config.BatchProcessing.ProcessorCount
	if buffer < 1 {
		buffer = 1
	}
	return &BatchProcessor{
		db:      db,
		queue:   queue,
		config:  config,
		logger:  logger,
		batches: make(chan []*models.Listing, buffer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start subscribes to the queue once and launches the worker pool. The
// single subscription hands each batch to exactly one worker; a batch is
// never upserted more than once.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*models.Listing) error {
		select {
		case p.batches <- batch:
			return nil
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	})

	for i := 0; i < p.config.BatchProcessing.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go p.worker()
	}
}

// Stop gracefully shuts down the processor.
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) worker() {
	defer p.waitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case batch := <-p.batches:
			if err := p.processBatch(batch); err != nil {
				p.logger.WithError(err).Error("Dropping batch after exhausting retries")
			}
		}
	}
}

func (p *BatchProcessor) processBatch(batch []*models.Listing) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchProcessing.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.BatchProcessing.MaxRetries)
			time.Sleep(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertListings(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert listings batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully processed batch of %d listings", len(batch))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.BatchProcessing.MaxRetries, err)
}
