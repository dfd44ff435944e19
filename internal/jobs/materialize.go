package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	ucSchedule "github.com/semprecheioapp/semprecheioapp-sub001/internal/usecase/schedule"
)

// Scheduler roda as rotinas periódicas da plataforma. Hoje só uma: a
// materialização antecipada da agenda do mês seguinte para todos os
// profissionais com template semanal.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	generateNextMonth *ucSchedule.GenerateNextMonth
}

func NewScheduler(
	logger *zap.Logger,
	generateNextMonth *ucSchedule.GenerateNextMonth,
) *Scheduler {
	return &Scheduler{
		cron:              cron.New(),
		logger:            logger,
		generateNextMonth: generateNextMonth,
	}
}

// Start registra os jobs e dispara o loop do cron. Dia 25 às 03:00 dá
// folga para corrigir a agenda antes da virada do mês.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 25 * *", s.runMaterializeNextMonth)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler iniciado")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runMaterializeNextMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	res, err := s.generateNextMonth.Execute(ctx, "")
	if err != nil {
		s.logger.Error("materialização mensal falhou", zap.Error(err))
		return
	}

	s.logger.Info("agenda do próximo mês materializada",
		zap.Int("created", res.Created),
		zap.Int("month", res.Month),
		zap.Int("year", res.Year),
	)
}
