package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	reservationService *service.ReservationService
	logger             *zap.Logger
	stopChan           chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reservationService *service.ReservationService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reservationService: reservationService,
		logger:             logger,
		stopChan:           make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runCompletionTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCompletionTask периодически закрывает прошедшие подтверждённые брони
func (s *Scheduler) runCompletionTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.completePast(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completePast(ctx)
		case <-s.stopChan:
			s.logger.Info("Completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Completion task cancelled")
			return
		}
	}
}

// completePast переводит подтверждённые брони из прошлого в completed
func (s *Scheduler) completePast(ctx context.Context) {
	err := s.reservationService.CompletePast(ctx)
	if err != nil {
		s.logger.Error("Failed to complete past reservations", zap.Error(err))
	}
}
