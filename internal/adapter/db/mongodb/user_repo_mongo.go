package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"usuarios-service/internal/domain/user"
	apperrors "usuarios-service/pkg/errors"
	"usuarios-service/pkg/logger"
)

// UserRepoMongo implements the Repository interface on a MongoDB collection.
type UserRepoMongo struct {
	coll *mongo.Collection
	log  *zap.Logger
}

// NewUserRepoMongo creates a new instance of UserRepoMongo.
func NewUserRepoMongo(coll *mongo.Collection, log *zap.Logger) *UserRepoMongo {
	return &UserRepoMongo{coll: coll, log: log}
}

// userDocument is the stored shape of a user.
type userDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
	Age  int                `bson:"age"`
}

func (d userDocument) toDomain() *user.User {
	return &user.User{ID: d.ID.Hex(), Name: d.Name, Age: d.Age}
}

// parseID converts a hex id into an ObjectID, rejecting anything malformed.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError("id", fmt.Sprintf("invalid id: %q is not a valid ObjectId", id))
	}
	return oid, nil
}

// Insert stores a new user and returns it with its assigned ID.
func (r *UserRepoMongo) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	doc := userDocument{
		ID:   primitive.NewObjectID(),
		Name: u.Name,
		Age:  u.Age,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to insert user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.WithContext(ctx, r.log).Info("user inserted", zap.String("id", doc.ID.Hex()))
	return doc.toDomain(), nil
}

// FindAll returns every user in the collection's natural order.
// Driver errors are returned unwrapped; their text reaches the client.
func (r *UserRepoMongo) FindAll(ctx context.Context) ([]user.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to decode users", zap.Error(err))
		return nil, err
	}

	users := make([]user.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, *d.toDomain())
	}
	return users, nil
}

// FindByIDAndUpdate sets the supplied fields and returns the document as it
// is after the update. It returns nil, nil when no document has that id.
func (r *UserRepoMongo) FindByIDAndUpdate(ctx context.Context, id string, p user.Patch) (*user.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if p.IsEmpty() {
		// $set with no fields is rejected by the server
		err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	} else {
		set := bson.D{}
		if p.Name != nil {
			set = append(set, bson.E{Key: "name", Value: *p.Name})
		}
		if p.Age != nil {
			set = append(set, bson.E{Key: "age", Value: *p.Age})
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.WithContext(ctx, r.log).Debug("user not found for update", zap.String("id", id))
		return nil, nil
	}
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to update user", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	logger.WithContext(ctx, r.log).Info("user updated", zap.String("id", id))
	return doc.toDomain(), nil
}

// FindByIDAndDelete removes the document with that id, if any.
func (r *UserRepoMongo) FindByIDAndDelete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.WithContext(ctx, r.log).Debug("user already absent", zap.String("id", id))
		return nil
	}
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to delete user", zap.String("id", id), zap.Error(err))
		return err
	}

	logger.WithContext(ctx, r.log).Info("user deleted", zap.String("id", id))
	return nil
}

// Ping checks that the deployment behind the collection is reachable.
func (r *UserRepoMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
