package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AlibekovAA/tasklist/backend/internal/common/db"
	"github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

const UsersCollection = "users"

type userDocument struct {
	ID             bson.RawValue `bson:"_id"`
	Username       string        `bson:"username"`
	Password       string        `bson:"password"`
	PasswordScheme string        `bson:"passwordScheme,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt,omitempty"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(UsersCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.coll.InsertOne(ctx, bson.D{
		{Key: "_id", Value: string(user.ID)},
		{Key: "username", Value: user.Username},
		{Key: "password", Value: user.Password.Value()},
		{Key: "passwordScheme", Value: user.Password.Scheme()},
		{Key: "createdAt", Value: user.CreatedAt},
	})
	if db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create user", db.TableUsers, start)
		return ErrUsernameAlreadyExists
	}
	return db.HandleExecError(err, "create user", db.TableUsers, start)
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find user by username", bson.M{"username": username})
}

func (r *MongoRepository) findOne(ctx context.Context, operation string, filter bson.M) (domain.User, error) {
	start := time.Now()

	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err := db.HandleQueryError(err, ErrUserNotFound, operation, db.TableUsers, start); err != nil {
		return domain.User{}, err
	}

	id, err := db.MongoIDString(doc.ID)
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:        domain.ID(id),
		Username:  doc.Username,
		Password:  domain.PasswordFromStorage(doc.PasswordScheme, doc.Password),
		CreatedAt: doc.CreatedAt.UTC(),
	}, nil
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, id domain.ID, password domain.Password) error {
	start := time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": db.MongoIDFilter(string(id))},
		bson.M{"$set": bson.M{"password": password.Value(), "passwordScheme": password.Scheme()}},
	)
	if err := db.HandleExecError(err, "update user password", db.TableUsers, start); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
