//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamRepositoryTestSuite tests the TeamRepository against a real MongoDB
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewTeamRepository(suite.baseTestSuite.DB, 5*time.Second)
	suite.ctx = context.Background()
}

func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.factories = testutils.NewFactorySet()
}

func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamRepositoryTestSuite) TestCreateAssignsID() {
	team := suite.factories.Team.Create()
	team.Members = nil

	suite.NoError(suite.repo.Create(suite.ctx, team))
	suite.False(team.ID.IsZero())
	suite.NotNil(team.Members)
}

func (suite *TeamRepositoryTestSuite) TestGetAll() {
	teams, err := suite.repo.GetAll(suite.ctx)
	suite.NoError(err)
	suite.NotNil(teams)
	suite.Empty(teams)

	suite.NoError(suite.repo.Create(suite.ctx, suite.factories.Team.WithMembers("a")))
	suite.NoError(suite.repo.Create(suite.ctx, suite.factories.Team.WithMembers("b")))

	teams, err = suite.repo.GetAll(suite.ctx)
	suite.NoError(err)
	suite.Len(teams, 2)
}

func (suite *TeamRepositoryTestSuite) TestGetWithMembersKeepsOrder() {
	f := suite.factories.User
	first := f.WithName("Zed", "Last")
	second := f.WithName("Amy", "First")
	suite.baseTestSuite.InsertUsers(suite.T(), first, second)

	team := suite.factories.Team.WithMembers("core", first, second)
	team.Members = append(team.Members, primitive.NewObjectID())
	suite.Require().NoError(suite.repo.Create(suite.ctx, team))

	got, err := suite.repo.GetWithMembers(suite.ctx, team.ID)
	suite.NoError(err)
	suite.Equal("core", got.Name)
	suite.Require().Len(got.Members, 2)
	suite.Equal("Zed", got.Members[0].FirstName)
	suite.Equal("Amy", got.Members[1].FirstName)
}

func (suite *TeamRepositoryTestSuite) TestGetWithMembersNotFound() {
	_, err := suite.repo.GetWithMembers(suite.ctx, primitive.NewObjectID())
	suite.ErrorIs(err, apperrors.ErrTeamNotFound)
}

func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
