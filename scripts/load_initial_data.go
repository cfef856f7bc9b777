package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"team-builder-backend/internal/config"
	"team-builder-backend/internal/database"
	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/repository"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// UserData mirrors a user document in the seed files
type UserData struct {
	ID        int    `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Gender    string `yaml:"gender"`
	Avatar    string `yaml:"avatar"`
	Domain    string `yaml:"domain"`
	Available *bool  `yaml:"available,omitempty"`
}

// TeamData names a team and its members by email
type TeamData struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// UsersFile is a YAML file with a top-level users list
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

// TeamsFile is a YAML file with a top-level teams list
type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

func main() {
	dataDir := flag.String("data", "scripts/data", "directory holding users*.yaml and teams*.yaml")
	flag.Parse()

	log.Println("Loading initial data from YAML files...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Retry while a dockerized MongoDB is still starting
	db, err := connectWithRetry(cfg, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(context.Background(), db) }()

	if err := loadDataFromYAMLFiles(context.Background(), db, *dataDir, cfg.OperationTimeout()); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

func connectWithRetry(cfg *config.Config, maxAttempts int, delay time.Duration) (*mongo.Database, error) {
	opts := &database.Options{ConnectTimeout: cfg.ConnectTimeout(), EnsureIndexes: true}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(cfg.MongoURI, cfg.MongoDatabase, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(ctx context.Context, db *mongo.Database, dataDir string, timeout time.Duration) error {
	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	teams, err := loadTeams(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	coll := db.Collection(models.User{}.CollectionName())
	created := 0
	for _, u := range users {
		ok, err := createUser(ctx, coll, u)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	log.Printf("Users: %d created, %d already present", created, len(users)-created)

	userRepo := repository.NewUserRepository(db, timeout)
	teamRepo := repository.NewTeamRepository(db, timeout)
	teamsColl := db.Collection(models.Team{}.CollectionName())
	created = 0
	for _, t := range teams {
		ok, err := createTeam(ctx, teamsColl, userRepo, teamRepo, t)
		if err != nil {
			return err
		}
		if ok {
			created++
		}
	}
	log.Printf("Teams: %d created, %d already present", created, len(teams)-created)
	return nil
}

func loadUsers(dataDir string) ([]UserData, error) {
	var all []UserData
	err := walkYAML(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		all = append(all, file.Users...)
		return nil
	})
	return all, err
}

func loadTeams(dataDir string) ([]TeamData, error) {
	var all []TeamData
	err := walkYAML(dataDir, "teams", func(data []byte) error {
		var file TeamsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		all = append(all, file.Teams...)
		return nil
	})
	return all, err
}

// walkYAML calls fn with the contents of every .yaml file whose name contains kind
func walkYAML(dataDir, kind string, fn func(data []byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), kind) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := fn(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func toUser(u UserData) (*models.User, error) {
	gender := models.Gender(u.Gender)
	if u.Gender != "" && !gender.IsValid() {
		return nil, fmt.Errorf("user %s: unknown gender %q", u.Email, u.Gender)
	}
	if u.Email == "" {
		return nil, fmt.Errorf("user %d: email is required", u.ID)
	}
	return &models.User{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Gender:    gender,
		Avatar:    u.Avatar,
		Domain:    u.Domain,
		Available: u.Available,
	}, nil
}

// createUser inserts the user unless one with the same email exists
func createUser(ctx context.Context, coll *mongo.Collection, data UserData) (bool, error) {
	user, err := toUser(data)
	if err != nil {
		return false, err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": user},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", user.Email, err)
	}
	return res.UpsertedCount > 0, nil
}

// createTeam stores the team unless one with the same name exists. Members that
// cannot be resolved by email are skipped with a warning.
func createTeam(ctx context.Context, coll *mongo.Collection, users repository.UserRepositoryInterface, teams repository.TeamRepositoryInterface, data TeamData) (bool, error) {
	n, err := coll.CountDocuments(ctx, bson.M{"name": data.Name})
	if err != nil {
		return false, fmt.Errorf("failed to query team %s: %w", data.Name, err)
	}
	if n > 0 {
		return false, nil
	}

	members := make([]primitive.ObjectID, 0, len(data.Members))
	for _, email := range data.Members {
		u, err := users.GetByEmail(ctx, email)
		if apperrors.IsNotFound(err) {
			log.Printf("Warning: team %s member %s not found, skipping", data.Name, email)
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to resolve member %s: %w", email, err)
		}
		members = append(members, u.ID)
	}

	if len(members) > 0 {
		if _, err := users.SetAvailabilityMany(ctx, members, false); err != nil {
			return false, fmt.Errorf("failed to mark members of %s: %w", data.Name, err)
		}
	}
	if err := teams.Create(ctx, &models.Team{Name: data.Name, Members: members}); err != nil {
		return false, fmt.Errorf("failed to create team %s: %w", data.Name, err)
	}
	return true, nil
}
