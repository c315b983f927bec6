package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding account documents.
const CollectionName = "users"

type profileDocument struct {
	Bio    string   `bson:"bio"`
	Skills []string `bson:"skills"`
}

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FullName    string             `bson:"fullname"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phoneNumber"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
	Profile     profileDocument    `bson:"profile"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *userDocument) model() *models.User {
	skills := d.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return &models.User{
		ID:          d.ID.Hex(),
		FullName:    d.FullName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Password:    d.Password,
		Role:        models.Role(d.Role),
		Profile:     models.Profile{Bio: d.Profile.Bio, Skills: skills},
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique index on email. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("creating email index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	skills := user.Profile.Skills
	if skills == nil {
		skills = []string{}
	}

	doc := userDocument{
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Password:    user.Password,
		Role:        string(user.Role),
		Profile:     profileDocument{Bio: user.Profile.Bio, Skills: skills},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateMongo(err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("db error: unexpected inserted id %T", res.InsertedID)
	}

	user.ID = id.Hex()
	user.Profile.Skills = skills
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByID treats an id that is not a valid ObjectID as a missing record.
func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}
	return doc.model(), nil
}

func (r *MongoRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	skills := user.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	now := time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"fullname":       user.FullName,
		"email":          user.Email,
		"phoneNumber":    user.PhoneNumber,
		"profile.bio":    user.Profile.Bio,
		"profile.skills": skills,
		"updatedAt":      now,
	}})
	if err != nil {
		return nil, translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return nil, common.ErrorNotFound
	}

	user.Profile.Skills = skills
	user.UpdatedAt = now
	return user, nil
}

func translateMongo(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return common.ErrorNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
	}
	return fmt.Errorf("db error: %w", err)
}
