package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepositoryTestSuite needs a live server; set MONGO_TEST_URI to run it.
type MongoRepositoryTestSuite struct {
	suite.Suite
	client *mongo.Client
	db     *mongo.Database
	users  UserRepository
	tasks  TaskRepository
	ctx    context.Context
}

func (suite *MongoRepositoryTestSuite) SetupSuite() {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		suite.T().Skip("MONGO_TEST_URI not set")
	}

	suite.ctx = context.Background()
	ctx, cancel := context.WithTimeout(suite.ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	suite.Require().NoError(err)
	suite.Require().NoError(client.Ping(ctx, nil))
	suite.client = client
}

func (suite *MongoRepositoryTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.client.Disconnect(suite.ctx)
	}
}

func (suite *MongoRepositoryTestSuite) SetupTest() {
	suite.db = suite.client.Database("tasktracker_test_" + models.NewID()[:8])
	suite.Require().NoError(EnsureMongoIndexes(suite.ctx, suite.db))
	suite.users = NewMongoUserRepository(suite.db)
	suite.tasks = NewMongoTaskRepository(suite.db)
}

func (suite *MongoRepositoryTestSuite) TearDownTest() {
	suite.db.Drop(suite.ctx)
}

func (suite *MongoRepositoryTestSuite) TestUsers() {
	user := &models.User{Username: "alice", PasswordHash: "hash"}
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	suite.NotEmpty(user.ID)

	err := suite.users.Create(suite.ctx, &models.User{Username: "alice", PasswordHash: "x"})
	suite.ErrorIs(err, ErrDuplicate)

	found, err := suite.users.FindByUsername(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(user.ID, found.ID)

	_, err = suite.users.FindByUsername(suite.ctx, "missing")
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *MongoRepositoryTestSuite) TestTaskLifecycle() {
	task := &models.Task{Title: "buy milk", OwnerID: "alice"}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, task))

	tasks, err := suite.tasks.ListByOwner(suite.ctx, "bob")
	suite.Require().NoError(err)
	suite.Empty(tasks)

	_, err = suite.tasks.ToggleCompleted(suite.ctx, task.ID, "bob")
	suite.ErrorIs(err, ErrNotFound)

	toggled, err := suite.tasks.ToggleCompleted(suite.ctx, task.ID, "alice")
	suite.Require().NoError(err)
	suite.True(toggled.IsCompleted)

	toggled, err = suite.tasks.ToggleCompleted(suite.ctx, task.ID, "alice")
	suite.Require().NoError(err)
	suite.False(toggled.IsCompleted)

	suite.ErrorIs(suite.tasks.DeleteByIDAndOwner(suite.ctx, task.ID, "bob"), ErrNotFound)
	suite.Require().NoError(suite.tasks.DeleteByIDAndOwner(suite.ctx, task.ID, "alice"))
	suite.ErrorIs(suite.tasks.DeleteByIDAndOwner(suite.ctx, task.ID, "alice"), ErrNotFound)
}

func TestMongoRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MongoRepositoryTestSuite))
}
