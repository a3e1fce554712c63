// internal/app/recommend/engine.go
package recommend

import (
	"context"
	"math"
	"sort"
	"time"

	eventstore "github.com/communitycare/carehub/internal/app/store/events"
	journalstore "github.com/communitycare/carehub/internal/app/store/journal"
	userstore "github.com/communitycare/carehub/internal/app/store/users"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	// Sentiment window and cap over journal history.
	sentimentWindow  = 30 * 24 * time.Hour
	sentimentMaxRows = 50

	// Output and fallback sizes.
	topN         = 5
	fallbackPool = 10
)

// Engine computes per-user recommendation snapshots from journal history
// and upcoming events. It is batch/on-demand: results are persisted on the
// user document and go stale until the next recompute.
type Engine struct {
	Events  *eventstore.Store
	Journal *journalstore.Store
	Users   *userstore.Store
	Log     *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Engine {
	return &Engine{
		Events:  eventstore.New(db),
		Journal: journalstore.New(db),
		Users:   userstore.New(db),
		Log:     logger,
	}
}

// SentimentAvg30d returns the rolling average of the user's journal
// sentiment over the last 30 days, reading at most the 50 most recent
// entries (newest first). No history means 0 (neutral).
func (e *Engine) SentimentAvg30d(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	since := time.Now().UTC().Add(-sentimentWindow)
	entries, err := e.Journal.ListRecentByUser(ctx, userID, since, sentimentMaxRows)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	var sum float64
	for _, entry := range entries {
		sum += entry.Sentiment
	}
	return sum / float64(len(entries)), nil
}

// Recompute ranks upcoming approved events for the user given a sentiment
// average, persists the top 5 IDs onto the user document, and returns them.
//
// Selection: the mood's bucket is filtered from upcoming events, ranked by
// the stored per-event sentiment score — closeness to the user's sentiment
// for a neutral mood, most-positive-first otherwise. If the bucket has no
// upcoming matches, the fallback is the 10 most recently created approved
// events capped at 5.
func (e *Engine) Recompute(ctx context.Context, userID primitive.ObjectID, sentiment float64) ([]primitive.ObjectID, error) {
	mood := Mood(sentiment)
	bucket := BucketForMood(mood)

	upcoming, err := e.Events.ListUpcomingApproved(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var matched []models.Event
	for _, ev := range upcoming {
		if Bucket(ev.Title, ev.Description) == bucket {
			matched = append(matched, ev)
		}
	}

	if len(matched) == 0 {
		recent, err := e.Events.ListRecentApproved(ctx, fallbackPool)
		if err != nil {
			return nil, err
		}
		matched = recent
	} else {
		rankEvents(matched, mood, sentiment)
	}

	if len(matched) > topN {
		matched = matched[:topN]
	}
	ids := make([]primitive.ObjectID, 0, len(matched))
	for _, ev := range matched {
		ids = append(ids, ev.ID)
	}

	snap := models.AISnapshot{
		JournalSentimentAvg30d: sentiment,
		RecommendedEventIDs:    ids,
		ComputedAt:             time.Now().UTC(),
	}
	if err := e.Users.SetAISnapshot(ctx, userID, snap); err != nil {
		return nil, err
	}

	e.Log.Debug("recommendations recomputed",
		zap.String("user_id", userID.Hex()),
		zap.Float64("sentiment", sentiment),
		zap.String("bucket", bucket),
		zap.Int("count", len(ids)))
	return ids, nil
}

// rankEvents orders a bucket by the stored per-event sentiment score.
// Neutral mood prefers events closest to the user's own sentiment; up or
// down moods prefer the most uplifting events first.
func rankEvents(events []models.Event, mood string, sentiment float64) {
	sort.SliceStable(events, func(i, j int) bool {
		if mood == MoodNeutral {
			return math.Abs(events[i].SentimentScore-sentiment) < math.Abs(events[j].SentimentScore-sentiment)
		}
		return events[i].SentimentScore > events[j].SentimentScore
	})
}

// RecommendedEvents resolves the user's stored snapshot to full event
// documents in stored rank order. A user without a snapshot gets one
// computed on the spot from their journal history.
func (e *Engine) RecommendedEvents(ctx context.Context, user models.User) ([]models.Event, error) {
	var ids []primitive.ObjectID
	if user.AI != nil {
		ids = user.AI.RecommendedEventIDs
	} else {
		sentiment, err := e.SentimentAvg30d(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		ids, err = e.Recompute(ctx, user.ID, sentiment)
		if err != nil {
			return nil, err
		}
	}

	events, err := e.Events.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Restore snapshot order; deleted events simply drop out.
	byID := make(map[primitive.ObjectID]models.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	ordered := make([]models.Event, 0, len(ids))
	for _, id := range ids {
		if ev, ok := byID[id]; ok {
			ordered = append(ordered, ev)
		}
	}
	return ordered, nil
}

// RecomputeAll refreshes the snapshot for every approved user. Run by the
// nightly job; individual failures are logged and skipped so one bad user
// cannot stall the batch.
func (e *Engine) RecomputeAll(ctx context.Context) error {
	users, err := e.Users.ListApproved(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		sentiment, err := e.SentimentAvg30d(ctx, u.ID)
		if err != nil {
			e.Log.Warn("sentiment aggregation failed",
				zap.String("user_id", u.ID.Hex()), zap.Error(err))
			continue
		}
		if _, err := e.Recompute(ctx, u.ID, sentiment); err != nil {
			e.Log.Warn("recommendation recompute failed",
				zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
	}
	return nil
}
