package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"usuarios-service/internal/domain/user"
	apperrors "usuarios-service/pkg/errors"
)

func newMockRepo(mt *mtest.T) *UserRepoMongo {
	return NewUserRepoMongo(mt.Coll, zaptest.NewLogger(mt.T))
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserRepoMongo_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns an id", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Insert(context.Background(), &user.User{Name: "Ana", Age: 30})

		require.NoError(mt, err)
		assert.Len(mt, created.ID, 24)
		assert.Equal(mt, "Ana", created.Name)
		assert.Equal(mt, 30, created.Age)
	})

	mt.Run("store error", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		created, err := repo.Insert(context.Background(), &user.User{Name: "Ana", Age: 30})

		assert.Nil(mt, created)
		assert.ErrorContains(mt, err, "failed to create user")
	})

	mt.Run("nil user", func(mt *mtest.T) {
		repo := newMockRepo(mt)

		_, err := repo.Insert(context.Background(), nil)

		assert.EqualError(mt, err, "user cannot be nil")
	})
}

func TestUserRepoMongo_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns documents in store order", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Ana"}, {Key: "age", Value: 30}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Bruno"}, {Key: "age", Value: 41}},
		))

		users, err := repo.FindAll(context.Background())

		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, user.User{ID: first.Hex(), Name: "Ana", Age: 30}, users[0])
		assert.Equal(mt, user.User{ID: second.Hex(), Name: "Bruno", Age: 41}, users[1])
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		users, err := repo.FindAll(context.Background())

		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := repo.FindAll(context.Background())

		var cmdErr mongo.CommandError
		require.ErrorAs(mt, err, &cmdErr)
		assert.Equal(mt, cmdErr.Error(), err.Error())
		assert.ErrorContains(mt, err, "not authorized")
	})
}

func TestUserRepoMongo_FindByIDAndUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("returns the updated document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key:   "value",
			Value: bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Ana"}, {Key: "age", Value: 40}},
		}))

		updated, err := repo.FindByIDAndUpdate(context.Background(), oid.Hex(), user.Patch{Age: intPtr(40)})

		require.NoError(mt, err)
		assert.Equal(mt, &user.User{ID: oid.Hex(), Name: "Ana", Age: 40}, updated)
	})

	mt.Run("unknown id is absent", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		updated, err := repo.FindByIDAndUpdate(context.Background(), oid.Hex(), user.Patch{Name: strPtr("Ana")})

		require.NoError(mt, err)
		assert.Nil(mt, updated)
	})

	mt.Run("empty patch reads the current document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Ana"}, {Key: "age", Value: 30}},
		))

		current, err := repo.FindByIDAndUpdate(context.Background(), oid.Hex(), user.Patch{})

		require.NoError(mt, err)
		assert.Equal(mt, 30, current.Age)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := newMockRepo(mt)

		updated, err := repo.FindByIDAndUpdate(context.Background(), "abc", user.Patch{Age: intPtr(40)})

		assert.Nil(mt, updated)
		var verr *apperrors.ValidationError
		require.True(mt, errors.As(err, &verr))
		assert.Equal(mt, "id", verr.Field)
	})
}

func TestUserRepoMongo_FindByIDAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("deletes an existing document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key:   "value",
			Value: bson.D{{Key: "_id", Value: oid}, {Key: "name", Value: "Ana"}, {Key: "age", Value: 30}},
		}))

		assert.NoError(mt, repo.FindByIDAndDelete(context.Background(), oid.Hex()))
	})

	mt.Run("missing document is not an error", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		assert.NoError(mt, repo.FindByIDAndDelete(context.Background(), oid.Hex()))
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := newMockRepo(mt)

		err := repo.FindByIDAndDelete(context.Background(), "not-an-id")

		var verr *apperrors.ValidationError
		assert.True(mt, errors.As(err, &verr))
	})
}
