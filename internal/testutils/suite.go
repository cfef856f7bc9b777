package testutils

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"team-builder-backend/internal/config"
	"team-builder-backend/internal/database"
	"team-builder-backend/internal/database/models"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ------------------------------
// Shared, process-wide resources
// ------------------------------
var (
	sharedOnce     sync.Once
	sharedInitErr  error
	sharedPool     *dockertest.Pool
	sharedResource *dockertest.Resource
	sharedDB       *mongo.Database
	sharedConfig   *config.Config
)

const testDatabaseName = "team_builder_test"

// BaseTestSuite gives integration tests access to the shared MongoDB container
type BaseTestSuite struct {
	DB     *mongo.Database
	Config *config.Config
}

// SetupTestSuite initializes (once) the shared MongoDB container and returns a per-suite wrapper.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() { sharedInitErr = initSharedMongoContainer() })
	if sharedInitErr != nil {
		t.Fatalf("failed to initialize shared test container: %v", sharedInitErr)
	}
	return &BaseTestSuite{
		DB:     sharedDB,
		Config: sharedConfig,
	}
}

// CleanupSharedContainer tears down Docker resources when the whole test run ends.
// This is called by TestMain in the integration test packages.
func CleanupSharedContainer() {
	log.Println("Starting Docker container cleanup...")
	if sharedDB != nil {
		_ = database.Close(context.Background(), sharedDB)
	}
	if sharedPool != nil && sharedResource != nil {
		log.Printf("Purging Docker container: %s", sharedResource.Container.Name)
		if err := sharedPool.Purge(sharedResource); err != nil {
			log.Printf("WARN: could not purge shared resource: %v", err)
		} else {
			log.Println("Successfully purged Docker container")
		}
		sharedResource = nil
		sharedPool = nil
		sharedDB = nil
	}
}

// ------------------------------
// Suite lifecycle hooks
// ------------------------------

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite is per *suite* (not process). The container persists across suites.
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB empties the known collections
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range []string{models.User{}.CollectionName(), models.Team{}.CollectionName()} {
		if _, err := s.DB.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Printf("WARN: could not clean %s: %v", name, err)
		}
	}
}

// InsertUsers stores the given users and fills in their ids
func (s *BaseTestSuite) InsertUsers(t *testing.T, users ...*models.User) {
	t.Helper()
	ctx := context.Background()
	coll := s.DB.Collection(models.User{}.CollectionName())
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		if _, err := coll.InsertOne(ctx, u); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}
}

// ------------------------------
// Shared MongoDB container init
// ------------------------------

func initSharedMongoContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}
	sharedPool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start mongo: %w", err)
	}
	sharedResource = resource

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		db, err := database.Initialize(uri, testDatabaseName, &database.Options{
			ConnectTimeout: 5 * time.Second,
			EnsureIndexes:  true,
		})
		if err != nil {
			return err
		}
		sharedDB = db
		return nil
	}); err != nil {
		return fmt.Errorf("could not connect to docker database: %w", err)
	}

	sharedConfig = &config.Config{
		Environment:              "test",
		Port:                     "8080",
		LogLevel:                 "debug",
		MongoURI:                 uri,
		MongoDatabase:            testDatabaseName,
		MongoConnectTimeoutSec:   5,
		MongoOperationTimeoutSec: 5,
	}

	log.Printf("Shared MongoDB ready on %s", uri)
	return nil
}
