package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

const collectionApplications = "applications"

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type mongoApplication struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"userId"`
	CardID       string             `bson:"cardId"`
	ApprovalOdds float64            `bson:"approvalOdds"`
	Status       string             `bson:"status"`
	Date         time.Time          `bson:"date"`
}

func (ma mongoApplication) toDomain() *domain.Application {
	return &domain.Application{
		ID:           ma.ID.Hex(),
		UserID:       ma.UserID,
		CardID:       ma.CardID,
		ApprovalOdds: ma.ApprovalOdds,
		Status:       ma.Status,
		Date:         ma.Date.UTC(),
	}
}

// Create inserts a new application document.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		UserID:       app.UserID,
		CardID:       app.CardID,
		ApprovalOdds: app.ApprovalOdds,
		Status:       app.Status,
		Date:         app.Date,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert application: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoApplication
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return ma.toDomain(), nil
}

// ListByUser returns every application for userID in natural order.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoApplication
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	apps := make([]*domain.Application, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, d.toDomain())
	}
	return apps, nil
}

// EnsureIndexes creates necessary indexes on the applications collection.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	return err
}
