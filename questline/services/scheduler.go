package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/questline-bot/questline/questline/utils"
)

// RecurringMissionConfig describes the mission template handed out by a
// recurring job.
type RecurringMissionConfig struct {
	Description string `toml:"description"`
	Points      int64  `toml:"points"`
	Goal        int    `toml:"goal"`
}

// SchedulerConfig collects everything the periodic coordinator needs to
// know about cadence and payouts.
type SchedulerConfig struct {
	Interval      time.Duration
	WarningWindow time.Duration

	Daily  RecurringMissionConfig
	Weekly RecurringMissionConfig

	// Weekly activity competition payout.
	TopCount  int
	TopPoints int64
	// How many rows the weekly summary broadcast shows.
	SummaryLimit int
}

func (c *SchedulerConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = time.Hour
	}
	if c.WarningWindow <= 0 {
		c.WarningWindow = 24 * time.Hour
	}
	if c.TopCount <= 0 {
		c.TopCount = 3
	}
	if c.TopPoints <= 0 {
		c.TopPoints = 10
	}
	if c.SummaryLimit <= 0 {
		c.SummaryLimit = 10
	}
}

// Scheduler is the single periodic coordinator for all recurring work:
// expiry sweeps, near-expiry warnings, daily and weekly mission assignment
// and the weekly activity competition. One coordinator with per-job window
// cursors replaces independently polling loops racing on the same
// week-boundary check.
type Scheduler struct {
	cfg       SchedulerConfig
	missions  *MissionService
	recurring *RecurringService
	activity  *ActivityService
	notifier  Notifier

	lastDailyWindow  time.Time
	lastWeeklyWindow time.Time

	Now func() time.Time
}

func NewScheduler(cfg SchedulerConfig, missions *MissionService, recurring *RecurringService, activity *ActivityService, notifier Notifier) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		cfg:       cfg,
		missions:  missions,
		recurring: recurring,
		activity:  activity,
		notifier:  notifier,
		Now:       time.Now,
	}
}

// Run blocks, executing due jobs once per interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("Scheduler started",
		slog.String("type", "sys"),
		slog.Duration("interval", s.cfg.Interval))

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// One pass at startup so a restarted process catches up immediately.
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			slog.Info("Scheduler stopped", slog.String("type", "sys"))
			return
		}
	}
}

// RunOnce evaluates every job and runs those that are due. Job failures
// are logged and never abort the tick.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.sweepExpired(ctx)
	s.warnNearExpiry(ctx)
	s.runDaily(ctx)
	s.runWeekly(ctx)
}

func (s *Scheduler) sweepExpired(ctx context.Context) {
	removed, err := s.missions.RemoveExpired(ctx)
	if err != nil {
		slog.Error("Expiry sweep failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}
	if removed > 0 {
		slog.Info("Expired missions removed",
			slog.String("type", "sys"),
			slog.Int("removed", removed))
	}
}

func (s *Scheduler) warnNearExpiry(ctx context.Context) {
	missions, err := s.missions.NearExpiry(ctx, s.cfg.WarningWindow)
	if err != nil {
		slog.Error("Near-expiry lookup failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}

	for _, m := range missions {
		msg := fmt.Sprintf("mission '%s' expires soon", m.Description)
		if err := s.notifier.NotifyUser(ctx, m.UserID, msg); err != nil {
			// Leave the flag unset so the next tick retries this user.
			slog.Error("Expiry warning delivery failed",
				slog.String("type", "sys"),
				slog.Int64("user_id", m.UserID),
				slog.Int64("mission_id", m.ID),
				slog.Any("error", err))
			continue
		}
		if err := s.missions.MarkWarningSent(ctx, m.ID); err != nil {
			slog.Error("Failed to mark warning sent",
				slog.String("type", "sys"),
				slog.Int64("mission_id", m.ID),
				slog.Any("error", err))
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context) {
	if s.cfg.Daily.Description == "" {
		return
	}
	window := utils.DayStart(s.Now())
	if !window.After(s.lastDailyWindow) {
		return
	}

	if _, err := s.recurring.AssignDaily(ctx, s.cfg.Daily.Description, s.cfg.Daily.Points, s.cfg.Daily.Goal); err != nil {
		slog.Error("Daily mission assignment failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}
	s.lastDailyWindow = window
}

func (s *Scheduler) runWeekly(ctx context.Context) {
	window := utils.WeekStart(s.Now())
	if !window.After(s.lastWeeklyWindow) {
		return
	}
	firstRun := s.lastWeeklyWindow.IsZero()

	if s.cfg.Weekly.Description != "" {
		if _, err := s.recurring.AssignWeekly(ctx, s.cfg.Weekly.Description, s.cfg.Weekly.Points, s.cfg.Weekly.Goal); err != nil {
			slog.Error("Weekly mission assignment failed",
				slog.String("type", "sys"),
				slog.Any("error", err))
			return
		}
	}

	// Settle the finished week: bonus points for the most active users and
	// a summary broadcast. Skipped on the very first run after startup so
	// a fresh deployment does not pay out a week it never observed.
	if !firstRun {
		s.settleWeek(ctx, window.AddDate(0, 0, -7))
	}
	s.lastWeeklyWindow = window
}

func (s *Scheduler) settleWeek(ctx context.Context, week time.Time) {
	rewarded, err := s.activity.RewardTop(ctx, week, s.cfg.TopCount, s.cfg.TopPoints)
	if err != nil {
		slog.Error("Weekly bonus distribution failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}
	for i, user := range rewarded {
		msg := fmt.Sprintf("Congratulations! You finished #%d in last week's activity ranking and earned %d bonus points.", i+1, s.cfg.TopPoints)
		if err := s.notifier.NotifyUser(ctx, user.ID, msg); err != nil {
			slog.Error("Congratulation delivery failed",
				slog.String("type", "sys"),
				slog.Int64("user_id", user.ID),
				slog.Any("error", err))
		}
	}

	summary, err := s.activity.WeeklySummary(ctx, week, s.cfg.SummaryLimit)
	if err != nil {
		slog.Error("Weekly summary build failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}
	if summary == "" {
		return
	}
	if err := s.notifier.Broadcast(ctx, summary); err != nil {
		slog.Error("Weekly summary broadcast failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
	}
}
