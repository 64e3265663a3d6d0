package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/cardwise/credit-card-api/internal/core/domain"
)

const usersNS = "credit_card_db.users"

func userDoc(id primitive.ObjectID, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: "a@b.com"},
		{Key: "password", Value: "$2a$10$hash"},
		{Key: "firstName", Value: "A"},
		{Key: "lastName", Value: "B"},
		{Key: "dateOfBirth", Value: "1990-01-01"},
		{Key: "annualIncome", Value: 50000},
		{Key: "creditScore", Value: 700},
		{Key: "createdAt", Value: createdAt},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		created, err := repo.Create(context.Background(), &domain.User{
			Email:        "a@b.com",
			PasswordHash: "$2a$10$hash",
			FirstName:    "A",
			LastName:     "B",
			AnnualIncome: 50000,
			CreditScore:  700,
		})
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(created.ID)
		assert.NoError(mt, err)
		assert.Equal(mt, "a@b.com", created.Email)
		assert.Equal(mt, "$2a$10$hash", created.PasswordHash)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: credit_card_db.users index: email_unique",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@b.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(id, createdAt)))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(mt, err)
		assert.Equal(mt, &domain.User{
			ID:           id.Hex(),
			Email:        "a@b.com",
			PasswordHash: "$2a$10$hash",
			FirstName:    "A",
			LastName:     "B",
			DateOfBirth:  "1990-01-01",
			AnnualIncome: 50000,
			CreditScore:  700,
			CreatedAt:    createdAt,
		}, user)
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByEmail(context.Background(), "ghost@b.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(id, time.Now().UTC())))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), user.ID)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("update profile sets two fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewUserRepository(mt.DB)

		n, err := repo.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), 90000, 800)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		set := started.Command.Lookup("updates", "0", "u", "$set").Document()
		elems, err := set.Elements()
		require.NoError(mt, err)
		assert.Len(mt, elems, 2)

		var fields struct {
			AnnualIncome int `bson:"annualIncome"`
			CreditScore  int `bson:"creditScore"`
		}
		require.NoError(mt, bson.Unmarshal(set, &fields))
		assert.Equal(mt, 90000, fields.AnnualIncome)
		assert.Equal(mt, 800, fields.CreditScore)
	})

	mt.Run("update profile unknown id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewUserRepository(mt.DB)

		n, err := repo.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), 90000, 800)
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("update profile malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		n, err := repo.UpdateProfile(context.Background(), "nope", 90000, 800)
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("update profile store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), 90000, 800)
		assert.Error(mt, err)
	})
}
