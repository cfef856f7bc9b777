package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"team-builder-backend/internal/database/models"
	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/mocks"
	"team-builder-backend/internal/service"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// TeamServiceTestSuite defines the test suite for TeamService
type TeamServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockTeamRepo *mocks.MockTeamRepositoryInterface
	mockUserRepo *mocks.MockUserRepositoryInterface
	teamService  *service.TeamService
	ctx          context.Context
}

func (suite *TeamServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.teamService = service.NewTeamService(suite.mockTeamRepo, suite.mockUserRepo, service.NewValidator())
	suite.ctx = context.Background()
}

func (suite *TeamServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func membersJSON(ids ...primitive.ObjectID) json.RawMessage {
	hexes := make([]string, 0, len(ids))
	for _, id := range ids {
		hexes = append(hexes, id.Hex())
	}
	b, _ := json.Marshal(hexes)
	return b
}

// TestCreateMarksMembersThenInserts tests the happy path ordering
func (suite *TeamServiceTestSuite) TestCreateMarksMembersThenInserts() {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	ids := []primitive.ObjectID{a, b}
	teamID := primitive.NewObjectID()

	gomock.InOrder(
		suite.mockUserRepo.EXPECT().SnapshotAvailability(suite.ctx, ids).Return([]models.User{{ID: a}}, nil),
		suite.mockUserRepo.EXPECT().SetAvailabilityMany(suite.ctx, ids, false).Return(int64(2), nil),
		suite.mockTeamRepo.EXPECT().Create(suite.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, team *models.Team) error {
				team.ID = teamID
				return nil
			}),
	)

	team, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
		Name:    "core",
		Members: membersJSON(a, b),
	})

	suite.NoError(err)
	suite.Equal(teamID, team.ID)
	suite.Equal("core", team.Name)
	suite.Equal(ids, team.Members)
}

func (suite *TeamServiceTestSuite) TestCreateEmptyMembers() {
	suite.mockUserRepo.EXPECT().SnapshotAvailability(gomock.Any(), []primitive.ObjectID{}).Return([]models.User{}, nil)
	suite.mockUserRepo.EXPECT().SetAvailabilityMany(gomock.Any(), []primitive.ObjectID{}, false).Return(int64(0), nil)
	suite.mockTeamRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	team, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
		Name:    "solo",
		Members: json.RawMessage(`[]`),
	})

	suite.NoError(err)
	suite.Empty(team.Members)
}

// TestCreateRejectsMalformedMembers tests that no store call happens for bad member input
func (suite *TeamServiceTestSuite) TestCreateRejectsMalformedMembers() {
	for name, raw := range map[string]string{
		"missing":    "",
		"null":       `null`,
		"string":     `"abc"`,
		"object":     `{"a":1}`,
		"numbers":    `[1,2]`,
		"not hex id": `["zzz"]`,
	} {
		suite.Run(name, func() {
			_, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
				Name:    "x",
				Members: json.RawMessage(raw),
			})
			suite.ErrorIs(err, apperrors.ErrInvalidMembers)
		})
	}
}

// TestCreateInsertFailureRestoresAvailability tests the compensating rollback
func (suite *TeamServiceTestSuite) TestCreateInsertFailureRestoresAvailability() {
	a := primitive.NewObjectID()
	snapshot := []models.User{{ID: a}}

	gomock.InOrder(
		suite.mockUserRepo.EXPECT().SnapshotAvailability(gomock.Any(), gomock.Any()).Return(snapshot, nil),
		suite.mockUserRepo.EXPECT().SetAvailabilityMany(gomock.Any(), gomock.Any(), false).Return(int64(1), nil),
		suite.mockTeamRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed")),
		suite.mockUserRepo.EXPECT().RestoreAvailability(gomock.Any(), snapshot).Return(nil),
	)

	_, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
		Name:    "core",
		Members: membersJSON(a),
	})

	suite.Error(err)
	suite.NotErrorIs(err, apperrors.ErrTeamRollbackFailed)
}

func (suite *TeamServiceTestSuite) TestCreateRollbackFailureIsReported() {
	suite.mockUserRepo.EXPECT().SnapshotAvailability(gomock.Any(), gomock.Any()).Return(nil, nil)
	suite.mockUserRepo.EXPECT().SetAvailabilityMany(gomock.Any(), gomock.Any(), false).Return(int64(0), errors.New("write failed"))
	suite.mockUserRepo.EXPECT().RestoreAvailability(gomock.Any(), gomock.Any()).Return(errors.New("restore failed"))

	_, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
		Members: membersJSON(primitive.NewObjectID()),
	})

	suite.ErrorIs(err, apperrors.ErrMarkMembersFailed)
	suite.ErrorIs(err, apperrors.ErrTeamRollbackFailed)
}

func (suite *TeamServiceTestSuite) TestCreateSnapshotFailure() {
	suite.mockUserRepo.EXPECT().SnapshotAvailability(gomock.Any(), gomock.Any()).Return(nil, errors.New("read failed"))

	_, err := suite.teamService.Create(suite.ctx, &service.CreateTeamRequest{
		Members: membersJSON(primitive.NewObjectID()),
	})

	suite.ErrorIs(err, apperrors.ErrMarkMembersFailed)
}

func (suite *TeamServiceTestSuite) TestGetAllNeverNil() {
	suite.mockTeamRepo.EXPECT().GetAll(suite.ctx).Return(nil, nil)

	teams, err := suite.teamService.GetAll(suite.ctx)

	suite.NoError(err)
	suite.NotNil(teams)
}

func (suite *TeamServiceTestSuite) TestGetByID() {
	id := primitive.NewObjectID()
	suite.mockTeamRepo.EXPECT().GetWithMembers(suite.ctx, id).Return(nil, apperrors.ErrTeamNotFound)

	_, err := suite.teamService.GetByID(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrTeamNotFound)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
