// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

Note: registrations deliberately has NO unique (event_id, user_id) index.
Registration dedup is a query-then-insert in the coordinator, and the
documented duplicate race under concurrency is observable behavior that a
unique constraint would silently change.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureOpportunities(ctx, db); err != nil {
		problems = append(problems, "opportunities: "+err.Error())
	}
	if err := ensureApplications(ctx, db); err != nil {
		problems = append(problems, "volunteer_applications: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureJournal(ctx, db); err != nil {
		problems = append(problems, "journal_entries: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Error("ensuring index failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			return err
		}
		zap.L().Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "approval_status.status", Value: 1}},
			Options: options.Index().SetName("approval_status"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("events"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "approval_status.status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("status_date"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("created_by"),
		},
	})
}

func ensureOpportunities(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("opportunities"), []mongo.IndexModel{
		{
			// 1:1 back-reference to the parent event.
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("uniq_event_id").SetUnique(true),
		},
	})
}

func ensureApplications(ctx context.Context, db *mongo.Database) error {
	// _id is already the deterministic "<userID>_<opportunityID>" key;
	// these support reverse lookups for cascades and listings.
	return ensureIndexSet(ctx, db.Collection("volunteer_applications"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "opportunity_id", Value: 1}},
			Options: options.Index().SetName("opportunity_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("registrations"), []mongo.IndexModel{
		{
			// Non-unique: see package comment.
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("event_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id"),
		},
	})
}

func ensureJournal(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("journal_entries"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created"),
		},
	})
}
