package scheduler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"Rabscootle/internal/logger"
	"Rabscootle/internal/model"
)

// Bot is the part of the bot the scheduled jobs drive.
type Bot interface {
	Execute(ctx context.Context, command, args, user, chatID string) (*model.Reply, string)
	Post(ctx context.Context, chatID string, reply *model.Reply) error
}

// Picker draws the next image of the shared non-repeating pool.
type Picker interface {
	Next() (string, bool)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron   *cron.Cron
	Bot    Bot
	Picker Picker
	ChatID string
	Ctx    context.Context
	log    *log.Logger
}

// NewScheduler creates a new Scheduler posting to chatID.
func NewScheduler(ctx context.Context, b Bot, picker Picker, chatID string) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Bot:    b,
		Picker: picker,
		ChatID: chatID,
		Ctx:    ctx,
		log:    logger.New("scheduler"),
	}
}

// RegisterAll registers the daily pepe and the crypto digest. An empty
// expression disables its job.
func (s *Scheduler) RegisterAll(dailyPepeCron, digestCron string, digestPairs []string) error {
	if dailyPepeCron != "" {
		if _, err := s.Cron.AddFunc(dailyPepeCron, s.DailyPepe); err != nil {
			return fmt.Errorf("register daily pepe task: %w", err)
		}
	}
	if digestCron != "" && len(digestPairs) > 0 {
		pairs := append([]string(nil), digestPairs...)
		if _, err := s.Cron.AddFunc(digestCron, func() { s.Digest(pairs) }); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Infof("scheduler started with %d jobs", len(s.Cron.Entries()))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// DailyPepe posts the next image from the picker.
func (s *Scheduler) DailyPepe() {
	uri, ok := s.Picker.Next()
	if !ok {
		s.log.Warn("daily pepe skipped: library is empty")
		return
	}
	s.post(&model.Reply{Content: uri})
}

// Digest posts a crypto reply for each pair.
func (s *Scheduler) Digest(pairs []string) {
	s.log.Infof("running crypto digest for %d pairs", len(pairs))
	for _, pair := range pairs {
		if s.Ctx.Err() != nil {
			return
		}
		reply, _ := s.Bot.Execute(s.Ctx, "crypto", pair, "scheduler", s.ChatID)
		if reply == nil {
			s.log.Warnf("digest %s: no reply", pair)
			continue
		}
		s.post(reply)
	}
}

func (s *Scheduler) post(reply *model.Reply) {
	if err := s.Bot.Post(s.Ctx, s.ChatID, reply); err != nil {
		s.log.Errorf("post to %s: %v", s.ChatID, err)
	}
}
