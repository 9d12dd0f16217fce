package gamify

import (
	"sync"
	"time"

	"github.com/paulinmemphis/AchievrAI-sub004/pkg/model"
	"go.uber.org/zap"
)

const dayKeyFormat = "2006-01-02"

// Persister stores the progress blob. Persistence failures are logged only;
// the in-memory state stays authoritative for the session.
type Persister interface {
	SaveProgress(model.Progress) error
	LoadProgress() (model.Progress, error)
}

// Config fixes the point arithmetic. The level threshold is Level * PointsPerLevel.
type Config struct {
	BasePoints     int
	StreakBonus    int
	PointsPerLevel int
}

// Service derives points, streak, level and badges from entry-creation events.
type Service struct {
	mu        sync.Mutex
	cfg       Config
	loc       *time.Location
	state     model.Progress
	persister Persister
	logger    *zap.SugaredLogger
}

func New(cfg Config, loc *time.Location, persister Persister, logger *zap.Logger) *Service {
	s := &Service{
		cfg:       cfg,
		loc:       loc,
		persister: persister,
		logger:    logger.Sugar(),
	}
	state, err := persister.LoadProgress()
	if err != nil {
		s.logger.Warnw("progress load failed, starting fresh", "err", err)
		state = model.NewProgress()
	}
	s.state = state
	return s
}

// RecordEntry applies the streak rule for "now", awards points, normalizes
// against the level threshold and grants any newly earned badges. The updated
// state is persisted before returning.
func (s *Service) RecordEntry(now time.Time) model.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := now.In(s.loc)
	today := local.Format(dayKeyFormat)

	switch {
	case s.state.LastEntryDate == nil:
		s.state.Streak = 1
	default:
		last := s.state.LastEntryDate.In(s.loc)
		switch {
		case last.Format(dayKeyFormat) == today:
			// same-day repeat: streak unchanged
		case last.AddDate(0, 0, 1).Format(dayKeyFormat) == today:
			s.state.Streak++
		default:
			s.state.Streak = 1
		}
	}

	award := s.cfg.BasePoints + s.cfg.StreakBonus*(s.state.Streak-1)
	s.state.Points += award
	s.normalizeLocked()

	s.state.EntryCount++
	s.state.JournaledDays[today] = true
	s.state.LastEntryDate = &local

	s.grantBadgesLocked()

	if err := s.persister.SaveProgress(s.state); err != nil {
		s.logger.Errorw("progress persist failed", "err", err)
	}
	return s.snapshotLocked()
}

// Reload replaces the in-memory state from the persister, used after a cloud
// pull rewrites the progress blob.
func (s *Service) Reload() error {
	state, err := s.persister.LoadProgress()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// State returns a copy of the current progress.
func (s *Service) State() model.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// PointsToLevel returns how many points remain until the next level.
func (s *Service) PointsToLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Level*s.cfg.PointsPerLevel - s.state.Points
}

// normalizeLocked rolls point overflow into level increments, carrying the
// remainder while points reach the threshold. Afterwards
// Points < Level * PointsPerLevel holds.
func (s *Service) normalizeLocked() {
	for s.state.Points >= s.state.Level*s.cfg.PointsPerLevel {
		s.state.Points -= s.state.Level * s.cfg.PointsPerLevel
		s.state.Level++
	}
}

// grantBadgesLocked appends any badge whose predicate just became true.
// Re-running with unchanged state never duplicates a badge.
func (s *Service) grantBadgesLocked() {
	grant := func(id string, earned bool) {
		if earned && !s.state.HasBadge(id) {
			s.state.Badges = append(s.state.Badges, id)
			s.logger.Infow("badge earned", "badge", id)
		}
	}
	grant(model.BadgeFirstEntry, s.state.EntryCount >= 1)
	grant(model.BadgeTenEntries, s.state.EntryCount >= 10)
	grant(model.BadgeWeekStreak, s.state.Streak >= 7)
	grant(model.BadgeLevelFive, s.state.Level >= 5)
	grant(model.BadgeFiveDays, len(s.state.JournaledDays) >= 5)
}

func (s *Service) snapshotLocked() model.Progress {
	out := s.state
	out.Badges = append([]string(nil), s.state.Badges...)
	out.JournaledDays = make(map[string]bool, len(s.state.JournaledDays))
	for k, v := range s.state.JournaledDays {
		out.JournaledDays[k] = v
	}
	if s.state.LastEntryDate != nil {
		d := *s.state.LastEntryDate
		out.LastEntryDate = &d
	}
	return out
}
