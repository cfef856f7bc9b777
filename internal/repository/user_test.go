//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/filter"
	"team-builder-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepositoryTestSuite tests the UserRepository against a real MongoDB
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB, 5*time.Second)
	suite.ctx = context.Background()
}

func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.factories = testutils.NewFactorySet()
}

func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *UserRepositoryTestSuite) TestFindAndCountWithBuiltFilter() {
	f := suite.factories.User
	suite.baseTestSuite.InsertUsers(suite.T(),
		f.WithName("Anna", "Smith"),
		f.WithName("Hannah", "Jones"),
		f.WithName("Bob", "Annandale"),
		f.WithName("Carl", "Brown"),
	)

	q, err := filter.BuildUserQuery(map[string][]string{"search": {"ANN"}})
	suite.Require().NoError(err)

	total, err := suite.repo.Count(suite.ctx, q.Filter)
	suite.NoError(err)
	suite.Equal(int64(3), total)

	users, err := suite.repo.Find(suite.ctx, q.Filter, 0, 2)
	suite.NoError(err)
	suite.Len(users, 2)
}

func (suite *UserRepositoryTestSuite) TestFindTreatsSearchAsLiteral() {
	suite.baseTestSuite.InsertUsers(suite.T(),
		suite.factories.User.WithName("A.n", "Dot"),
		suite.factories.User.WithName("Ann", "Plain"),
	)

	q, err := filter.BuildUserQuery(map[string][]string{"search": {"a.n"}})
	suite.Require().NoError(err)

	users, err := suite.repo.Find(suite.ctx, q.Filter, 0, 20)
	suite.NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal("Dot", users[0].LastName)
}

func (suite *UserRepositoryTestSuite) TestFindEmptyResultIsNotNil() {
	users, err := suite.repo.Find(suite.ctx, bson.M{}, 0, 20)
	suite.NoError(err)
	suite.NotNil(users)
	suite.Empty(users)
}

func (suite *UserRepositoryTestSuite) TestGetByIDAndEmail() {
	u := suite.factories.User.Create()
	suite.baseTestSuite.InsertUsers(suite.T(), u)

	got, err := suite.repo.GetByID(suite.ctx, u.ID)
	suite.NoError(err)
	suite.Equal(u.Email, got.Email)

	got, err = suite.repo.GetByEmail(suite.ctx, u.Email)
	suite.NoError(err)
	suite.Equal(u.ID, got.ID)

	_, err = suite.repo.GetByID(suite.ctx, primitive.NewObjectID())
	suite.ErrorIs(err, apperrors.ErrUserNotFound)

	_, err = suite.repo.GetByEmail(suite.ctx, "nobody@example.com")
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *UserRepositoryTestSuite) TestUpdateReturnsNewDocument() {
	u := suite.factories.User.Create()
	suite.baseTestSuite.InsertUsers(suite.T(), u)

	got, err := suite.repo.Update(suite.ctx, u.ID, bson.M{"first_name": "Jane"})
	suite.NoError(err)
	suite.Equal("Jane", got.FirstName)
	suite.Equal(u.LastName, got.LastName)

	_, err = suite.repo.Update(suite.ctx, primitive.NewObjectID(), bson.M{"first_name": "X"})
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *UserRepositoryTestSuite) TestDelete() {
	u := suite.factories.User.Create()
	suite.baseTestSuite.InsertUsers(suite.T(), u)

	suite.NoError(suite.repo.Delete(suite.ctx, u.ID))
	suite.ErrorIs(suite.repo.Delete(suite.ctx, u.ID), apperrors.ErrUserNotFound)
}

func (suite *UserRepositoryTestSuite) TestSetAvailability() {
	u := suite.factories.User.Create()
	suite.baseTestSuite.InsertUsers(suite.T(), u)

	got, err := suite.repo.SetAvailability(suite.ctx, u.ID, false)
	suite.NoError(err)
	suite.Require().NotNil(got.Available)
	suite.False(*got.Available)

	got, err = suite.repo.SetAvailability(suite.ctx, primitive.NewObjectID(), false)
	suite.NoError(err)
	suite.Nil(got)
}

func (suite *UserRepositoryTestSuite) TestAvailabilitySnapshotAndRestore() {
	f := suite.factories.User
	unset := f.Create()
	available := f.WithAvailability(true)
	taken := f.WithAvailability(false)
	suite.baseTestSuite.InsertUsers(suite.T(), unset, available, taken)
	ids := []primitive.ObjectID{unset.ID, available.ID, taken.ID}

	snapshot, err := suite.repo.SnapshotAvailability(suite.ctx, ids)
	suite.NoError(err)
	suite.Len(snapshot, 2)

	matched, err := suite.repo.SetAvailabilityMany(suite.ctx, ids, false)
	suite.NoError(err)
	suite.Equal(int64(3), matched)

	suite.NoError(suite.repo.RestoreAvailability(suite.ctx, snapshot))

	got, err := suite.repo.GetByID(suite.ctx, unset.ID)
	suite.NoError(err)
	suite.Nil(got.Available)

	got, err = suite.repo.GetByID(suite.ctx, available.ID)
	suite.NoError(err)
	suite.Require().NotNil(got.Available)
	suite.True(*got.Available)

	got, err = suite.repo.GetByID(suite.ctx, taken.ID)
	suite.NoError(err)
	suite.Require().NotNil(got.Available)
	suite.False(*got.Available)
}

func (suite *UserRepositoryTestSuite) TestGroupBySortsDistinctValues() {
	f := suite.factories.User
	suite.baseTestSuite.InsertUsers(suite.T(),
		f.WithDomainAndGender("Sales", models.GenderMale),
		f.WithDomainAndGender("IT", models.GenderFemale),
		f.WithDomainAndGender("Sales", models.GenderFemale),
	)

	domains, err := suite.repo.GroupBy(suite.ctx, "domain")
	suite.NoError(err)
	suite.Equal([]models.GroupValue{{Value: "IT"}, {Value: "Sales"}}, domains)

	genders, err := suite.repo.GroupBy(suite.ctx, "gender")
	suite.NoError(err)
	suite.Len(genders, 2)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
