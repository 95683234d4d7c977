package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AlibekovAA/tasklist/backend/internal/common/db"
	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

const TasksCollection = "tasks"

type taskDocument struct {
	ID        bson.RawValue `bson:"_id"`
	UserID    string        `bson:"userId"`
	Text      string        `bson:"text"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d taskDocument) toDomain() (domain.Task, error) {
	id, err := db.MongoIDString(d.ID)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{
		ID:        domain.ID(id),
		OwnerID:   userdomain.ID(d.UserID),
		Text:      d.Text,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(TasksCollection)}
}

func (r *MongoRepository) Create(ctx context.Context, task domain.Task) error {
	start := time.Now()
	_, err := r.coll.InsertOne(ctx, bson.D{
		{Key: "_id", Value: string(task.ID)},
		{Key: "userId", Value: string(task.OwnerID)},
		{Key: "text", Value: task.Text},
		{Key: "createdAt", Value: task.CreatedAt},
	})
	return db.HandleExecError(err, "create task", db.TableTasks, start)
}

func (r *MongoRepository) List(ctx context.Context, owner userdomain.ID, filter string) ([]domain.Task, error) {
	start := time.Now()

	query := bson.M{"userId": string(owner)}
	if filter != "" {
		query["text"] = textPattern(filter)
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err := db.HandleQueryError(err, ErrTaskNotFound, "list tasks", db.TableTasks, start); err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []domain.Task{}
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, db.HandleExecError(err, "decode task", db.TableTasks, start)
		}
		t, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, db.HandleExecError(err, "iterate tasks", db.TableTasks, start)
	}

	return tasks, nil
}

func (r *MongoRepository) UpdateText(ctx context.Context, owner userdomain.ID, id domain.ID, text string) (domain.Task, error) {
	start := time.Now()

	var doc taskDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": db.MongoIDFilter(string(id)), "userId": string(owner)},
		bson.M{"$set": bson.M{"text": text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err := db.HandleQueryError(err, ErrTaskNotFound, "update task", db.TableTasks, start); err != nil {
		return domain.Task{}, err
	}

	return doc.toDomain()
}

func (r *MongoRepository) Delete(ctx context.Context, owner userdomain.ID, id domain.ID) error {
	start := time.Now()
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": db.MongoIDFilter(string(id)), "userId": string(owner)})
	if err := db.HandleExecError(err, "delete task", db.TableTasks, start); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// textPattern matches filter literally, ignoring case.
func textPattern(filter string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(filter), Options: "i"}
}
