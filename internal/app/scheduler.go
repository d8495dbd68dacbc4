package app

import (
	"context"
	"fmt"

	"github.com/fourfold/fourfold/internal/utils"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs the monthly recurring-expense carry-forward job.
type Scheduler struct {
	cron           *cron.Cron
	expenseService expense.ExpenseService
	clock          utils.Clock
}

func NewScheduler(expenseService expense.ExpenseService, clock utils.Clock) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithSeconds()),
		expenseService: expenseService,
		clock:          clock,
	}
}

// Register registers the carry-forward job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.carryForward); err != nil {
		return fmt.Errorf("register carry-forward task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}

func (s *Scheduler) carryForward() {
	target := month.FromTime(s.clock.Now())
	created, err := s.expenseService.CarryForward(context.Background(), target)
	if err != nil {
		log.Errorf("scheduled carry-forward for %s failed: %v", target, err)
		return
	}
	log.Infof("scheduled carry-forward for %s created %d expenses", target, len(created))
}
