// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/communitycare/carehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateEmail = errors.New("an account with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Create registers a new account in the Pending approval state. The
// password is bcrypt-hashed here so plaintext never leaves this function.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullNameCI = text.Fold(u.FullName)
	u.PasswordHash = string(hash)
	u.Approved = false
	u.ApprovalStatus = models.Pending()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (s *Store) CheckPassword(u models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile merges self-owned profile fields; nil fields are untouched.
// Role and approval are admin-owned and have their own setters.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, phone, profileImage *string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if fullName != nil {
		set["full_name"] = *fullName
		set["full_name_ci"] = text.Fold(*fullName)
	}
	if phone != nil {
		set["phone_number"] = *phone
	}
	if profileImage != nil {
		set["profile_image"] = *profileImage
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// SetApproval records an admin decision on the account and keeps the
// denormalized Approved flag in step with it.
func (s *Store) SetApproval(ctx context.Context, id primitive.ObjectID, st models.ApprovalStatus) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"approval_status": st,
		"approved":        st.Status == models.StatusApproved,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}

func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetAISnapshot persists the recomputed recommendation snapshot.
func (s *Store) SetAISnapshot(ctx context.Context, id primitive.ObjectID, snap models.AISnapshot) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"ai":         snap,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListPending returns accounts awaiting moderation, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]models.User, error) {
	return s.list(ctx, bson.M{"approval_status.status": models.StatusPending},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

// ListApproved returns all approved accounts. The nightly recommendation
// recompute iterates this set.
func (s *Store) ListApproved(ctx context.Context) ([]models.User, error) {
	return s.list(ctx, bson.M{"approved": true}, options.Find())
}

func (s *Store) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
