package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/AlibekovAA/tasklist/backend/internal/common/config"
	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
	"github.com/AlibekovAA/tasklist/backend/internal/common/logger"
	taskrepo "github.com/AlibekovAA/tasklist/backend/internal/task/repository"
	userrepo "github.com/AlibekovAA/tasklist/backend/internal/user/repository"
)

func openMongo(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Store, error) {
	cs, err := connstring.ParseAndValidate(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse mongo url: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = constants.DefaultMongoDatabase
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = constants.DefaultStorageConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout).
		SetAppName("tasklist")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(dbName)
	if err := ensureIndexes(connectCtx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Infof("mongo connection initialized: database=%s", dbName)

	return &Store{
		Users: userrepo.NewMongoRepository(database),
		Tasks: taskrepo.NewMongoRepository(database),
		name:  BackendMongo,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(userrepo.UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = database.Collection(taskrepo.TasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create tasks index: %w", err)
	}
	return nil
}
