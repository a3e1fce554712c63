// internal/app/store/opportunities/opportunitystore.go
package opportunitystore

import (
	"context"
	"errors"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateOpportunity is returned when a second opportunity is created
// for the same event. The events↔opportunities relationship is 1:1,
// enforced by a unique index on event_id.
var ErrDuplicateOpportunity = errors.New("an opportunity already exists for this event")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("opportunities")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Opportunity, error) {
	var o models.Opportunity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// GetByEventID returns the opportunity linked to an event, or nil when the
// event has none. Not-found is a normal answer here, not an error.
func (s *Store) GetByEventID(ctx context.Context, eventID primitive.ObjectID) (*models.Opportunity, error) {
	var o models.Opportunity
	err := s.c.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) Create(ctx context.Context, o models.Opportunity) (models.Opportunity, error) {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.ApprovalStatus = models.Pending()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Opportunity{}, ErrDuplicateOpportunity
		}
		return models.Opportunity{}, err
	}
	return o, nil
}

// UpdateFields performs a partial merge; unspecified fields keep their
// stored values.
type UpdateFields struct {
	Title            *string
	VolunteersNeeded *int
	Description      *string
	Timings          *string
	Location         *string
	Rewards          *string
	Refreshments     *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.VolunteersNeeded != nil {
		set["volunteers_needed"] = *f.VolunteersNeeded
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.Timings != nil {
		set["timings"] = *f.Timings
	}
	if f.Location != nil {
		set["location"] = *f.Location
	}
	if f.Rewards != nil {
		set["rewards"] = *f.Rewards
	}
	if f.Refreshments != nil {
		set["refreshments"] = *f.Refreshments
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

func (s *Store) SetApproval(ctx context.Context, id primitive.ObjectID, st models.ApprovalStatus) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"approval_status": st,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}

// DeleteByEventID removes every opportunity linked to an event (at most one
// is expected) and returns the IDs of the deleted documents so the caller
// can cascade to applications.
func (s *Store) DeleteByEventID(ctx context.Context, eventID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if _, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListApproved returns approved opportunities, newest first.
func (s *Store) ListApproved(ctx context.Context) ([]models.Opportunity, error) {
	cur, err := s.c.Find(ctx, bson.M{"approval_status.status": models.StatusApproved},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Opportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
