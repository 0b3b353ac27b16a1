package reputation

import (
	"context"
	"time"

	"github.com/amora-app/amora/internal/database/models"
	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"go.uber.org/zap"
)

// fakeStore is an in-memory stand-in for the database models, mirroring
// their query semantics closely enough to exercise the policy logic.
type fakeStore struct {
	users   map[uint64]*types.User
	reps    map[uint64]*types.ReputationData
	metrics map[uint64]*types.MessageMetrics
	blocks  map[[2]uint64]bool
	convos  map[[2]uint64]bool
	reports []*types.Report

	burstScores map[uint64]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uint64]*types.User),
		reps:        make(map[uint64]*types.ReputationData),
		metrics:     make(map[uint64]*types.MessageMetrics),
		blocks:      make(map[[2]uint64]bool),
		convos:      make(map[[2]uint64]bool),
		burstScores: make(map[uint64]float64),
	}
}

func (s *fakeStore) GetUserByID(_ context.Context, userID uint64) (*types.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}

	return user, nil
}

func (s *fakeStore) SaveUser(_ context.Context, user *types.User) error {
	if existing, ok := s.users[user.ID]; ok {
		// The conflict clause never touches the denormalized tier.
		user.Tier = existing.Tier
		user.CreatedAt = existing.CreatedAt
	}

	s.users[user.ID] = user

	return nil
}

func (s *fakeStore) SetTier(_ context.Context, userID uint64, tier enum.Tier) error {
	if user, ok := s.users[userID]; ok {
		user.Tier = tier
	}

	return nil
}

func (s *fakeStore) GetReputation(_ context.Context, userID uint64) (*types.ReputationData, error) {
	rep, ok := s.reps[userID]
	if !ok {
		return nil, models.ErrReputationNotFound
	}

	clone := *rep

	return &clone, nil
}

func (s *fakeStore) CreateInitial(_ context.Context, data *types.ReputationData) error {
	if _, ok := s.reps[data.UserID]; ok {
		return nil
	}

	clone := *data
	s.reps[data.UserID] = &clone

	return nil
}

func (s *fakeStore) UpsertCalculation(_ context.Context, data *types.ReputationData) error {
	clone := *data

	if existing, ok := s.reps[data.UserID]; ok {
		// The conflict clause leaves the gate-owned columns alone.
		clone.ConversationsToday = existing.ConversationsToday
		clone.LastCounterDate = existing.LastCounterDate
		clone.BurstScore = existing.BurstScore
	}

	s.reps[data.UserID] = &clone

	return nil
}

func (s *fakeStore) SetBurstScore(_ context.Context, userID uint64, score float64) error {
	s.burstScores[userID] = score

	if rep, ok := s.reps[userID]; ok {
		rep.BurstScore = score
	}

	return nil
}

func (s *fakeStore) ConsumeDailyConversation(
	_ context.Context, userID uint64, today time.Time, quota int,
) (int, bool, error) {
	rep, ok := s.reps[userID]
	if !ok {
		return 0, false, nil
	}

	used := 0
	if rep.LastCounterDate.Equal(today) {
		used = rep.ConversationsToday
	}

	if quota >= 0 && used >= quota {
		return 0, false, nil
	}

	rep.ConversationsToday = used + 1
	rep.LastCounterDate = today

	return used + 1, true, nil
}

func (s *fakeStore) GetMetrics(_ context.Context, userID uint64) (*types.MessageMetrics, error) {
	if metrics, ok := s.metrics[userID]; ok {
		return metrics, nil
	}

	return &types.MessageMetrics{UserID: userID}, nil
}

func (s *fakeStore) IsBlockedEither(_ context.Context, userA, userB uint64) (bool, error) {
	return s.blocks[[2]uint64{userA, userB}] || s.blocks[[2]uint64{userB, userA}], nil
}

func (s *fakeStore) CountBlocksAgainst(_ context.Context, userID uint64) (int, error) {
	count := 0

	for pair, blocked := range s.blocks {
		if blocked && pair[1] == userID {
			count++
		}
	}

	return count, nil
}

func (s *fakeStore) Exists(_ context.Context, userA, userB uint64) (bool, error) {
	low, high := types.NormalizePair(userA, userB)

	return s.convos[[2]uint64{low, high}], nil
}

func (s *fakeStore) addConversation(userA, userB uint64) {
	low, high := types.NormalizePair(userA, userB)
	s.convos[[2]uint64{low, high}] = true
}

func (s *fakeStore) CreateReport(_ context.Context, report *types.Report) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	s.reports = append(s.reports, report)

	return nil
}

func (s *fakeStore) HasRecentReport(
	_ context.Context, reporterID, reportedUserID uint64, since time.Time,
) (bool, error) {
	for _, report := range s.reports {
		if report.ReporterID == reporterID && report.ReportedUserID == reportedUserID &&
			report.CreatedAt.After(since) {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeStore) CountReportsBySince(_ context.Context, reporterID uint64, since time.Time) (int, error) {
	count := 0

	for _, report := range s.reports {
		if report.ReporterID == reporterID && report.CreatedAt.After(since) {
			count++
		}
	}

	return count, nil
}

func (s *fakeStore) CountReportsAgainst(_ context.Context, reportedUserID uint64) (int, error) {
	count := 0

	for _, report := range s.reports {
		if report.ReportedUserID == reportedUserID {
			count++
		}
	}

	return count, nil
}

func (s *fakeStore) GetReporterStats(_ context.Context, reporterID uint64) (*types.ReporterStats, error) {
	stats := new(types.ReporterStats)

	for _, report := range s.reports {
		if report.ReporterID != reporterID {
			continue
		}

		stats.Submitted++

		if report.Status == enum.ReportStatusDismissed {
			stats.Dismissed++
		}
	}

	return stats, nil
}

// fakeRecalculator records recalculation triggers without running the
// pipeline.
type fakeRecalculator struct {
	rep   *types.ReputationData
	calls []fakeRecalcCall
}

type fakeRecalcCall struct {
	userID    uint64
	overrides *Overrides
}

func (f *fakeRecalculator) Recalculate(
	_ context.Context, userID uint64, overrides *Overrides,
) (*types.ReputationData, error) {
	f.calls = append(f.calls, fakeRecalcCall{userID: userID, overrides: overrides})

	if f.rep != nil {
		return f.rep, nil
	}

	return NewUserReputation(userID, time.Now()), nil
}

func newTestGate(store *fakeStore, recalc recalculationRunner) *Gate {
	return &Gate{
		users:         store,
		blocks:        store,
		reputation:    store,
		conversations: store,
		recalculator:  recalc,
		logger:        zap.NewNop(),
	}
}

func newTestLimiter(store *fakeStore, recalc recalculationRunner) *ReportLimiter {
	return &ReportLimiter{
		reports:      store,
		reputation:   store,
		recalculator: recalc,
		logger:       zap.NewNop(),
	}
}

func newTestRecalculator(store *fakeStore) *Recalculator {
	aggregator := &Aggregator{
		users:      store,
		metrics:    store,
		blocks:     store,
		reports:    store,
		reputation: store,
		logger:     zap.NewNop(),
	}

	return &Recalculator{
		aggregator: aggregator,
		reputation: store,
		users:      store,
		logger:     zap.NewNop(),
	}
}
