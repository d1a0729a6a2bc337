package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
	accountrepo "github.com/KirkDiggler/cyber-pit/internal/repositories/account"
	accountmock "github.com/KirkDiggler/cyber-pit/internal/repositories/account/mock"
	"github.com/KirkDiggler/cyber-pit/internal/services/user"
	"github.com/KirkDiggler/cyber-pit/internal/testutils"
	"github.com/KirkDiggler/cyber-pit/internal/testutils/builders"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo    *accountrepo.InMemoryRepository
	catalog *robot.Catalog
	service *user.Service
	ctx     context.Context
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = accountrepo.NewInMemoryRepository(nil)
	s.catalog = testutils.NewTestCatalog(s.T(),
		builders.NewBuildTemplateBuilder("Heavy").WithHealth(30).Build(),
	)

	var err error
	s.service, err = user.New(&user.Config{
		Repository:      s.repo,
		Catalog:         s.catalog,
		Roller:          rng.Always(1),
		StartingBalance: 500,
		HashCost:        bcrypt.MinCost,
	})
	s.Require().NoError(err)
}

func (s *UserServiceTestSuite) register(name, password string) *user.RegisterOutput {
	out, err := s.service.Register(s.ctx, &user.RegisterInput{Username: name, Password: password})
	s.Require().NoError(err)
	return out
}

func (s *UserServiceTestSuite) TestNew_Validation() {
	_, err := user.New(&user.Config{StartingBalance: -1, HashCost: 99})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	for _, field := range []string{"Repository", "Catalog", "Roller", "StartingBalance", "HashCost"} {
		s.Assert().Contains(err.Error(), field)
	}
}

func (s *UserServiceTestSuite) TestRegister_GrantsStartingBalance() {
	out := s.register("  ada ", "hunter2")

	s.Assert().Equal("ada", out.Account.Username)
	s.Assert().Equal(500, out.Account.Balance)
	s.Assert().False(out.Account.HasRobot())
	s.Assert().NotEqual([]byte("hunter2"), out.Account.PasswordHash)
	s.Assert().NoError(bcrypt.CompareHashAndPassword(out.Account.PasswordHash, []byte("hunter2")))

	balance, err := out.Ledger.CurrentBalance(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(500, balance)
	s.Assert().Equal("ada", out.Ledger.Username())
}

func (s *UserServiceTestSuite) TestRegister_Rejections() {
	s.register("ada", "hunter2")

	testCases := []struct {
		name     string
		username string
		password string
		check    func(error) bool
	}{
		{name: "blank name", username: "   ", password: "hunter2", check: errors.IsInvalidArgument},
		{name: "short password", username: "bob", password: "abc", check: errors.IsInvalidArgument},
		{name: "long password", username: "bob", password: string(make([]byte, 73)), check: errors.IsInvalidArgument},
		{name: "taken name", username: "ada", password: "other", check: errors.IsAlreadyExists},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Register(s.ctx, &user.RegisterInput{Username: tc.username, Password: tc.password})
			s.Require().Error(err)
			s.Assert().True(tc.check(err), err.Error())
			s.Assert().False(errors.IsFatal(err))
		})
	}
}

func (s *UserServiceTestSuite) TestLogin_WithoutRobot() {
	s.register("ada", "hunter2")

	out, err := s.service.Login(s.ctx, &user.LoginInput{Username: "ada", Password: "hunter2"})
	s.Require().NoError(err)
	s.Assert().Equal(500, out.Account.Balance)
	s.Assert().Nil(out.Robot)
	s.Assert().NotNil(out.Ledger)
}

func (s *UserServiceTestSuite) TestLogin_RestoresRobot() {
	reg := s.register("ada", "hunter2")
	r := testutils.NewTestRobot(s.T(), s.catalog, "Heavy", "robot_7", rng.Always(1))
	s.Require().NoError(reg.Ledger.PersistRobot(s.ctx, r))

	out, err := s.service.Login(s.ctx, &user.LoginInput{Username: "ada", Password: "hunter2"})
	s.Require().NoError(err)
	s.Require().NotNil(out.Robot)
	s.Assert().Equal("robot_7", out.Robot.GetID())
	s.Assert().Equal(testutils.TestRobotName, out.Robot.Name())
	s.Assert().Equal("Heavy", out.Robot.Template().Name)
	s.Assert().Equal(30, out.Robot.Health())
}

func (s *UserServiceTestSuite) TestLogin_Failures() {
	s.register("ada", "hunter2")

	_, err := s.service.Login(s.ctx, &user.LoginInput{Username: "ada", Password: "hunter3"})
	s.Assert().True(errors.IsUnauthenticated(err))

	_, err = s.service.Login(s.ctx, &user.LoginInput{Username: "bob", Password: "hunter2"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.service.Login(s.ctx, &user.LoginInput{Username: ""})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *UserServiceTestSuite) TestLogin_UnknownStoredBuild() {
	reg := s.register("ada", "hunter2")
	acc := reg.Account
	acc.RobotID = "robot_1"
	acc.RobotName = "Ghost"
	acc.RobotBuild = "Retired"
	_, err := s.repo.Update(s.ctx, accountrepo.UpdateInput{Account: acc})
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, &user.LoginInput{Username: "ada", Password: "hunter2"})
	s.Require().Error(err)
	s.Assert().True(errors.IsMisconfigured(err))
	s.Assert().True(errors.IsFatal(err))
}

func (s *UserServiceTestSuite) TestStorageFailureIsInternal() {
	ctrl := gomock.NewController(s.T())
	repo := accountmock.NewMockRepository(ctrl)

	service, err := user.New(&user.Config{
		Repository:      repo,
		Catalog:         s.catalog,
		Roller:          rng.Always(1),
		StartingBalance: 500,
		HashCost:        bcrypt.MinCost,
	})
	s.Require().NoError(err)

	repo.EXPECT().Create(s.ctx, gomock.Any()).Return(nil, errors.New(errors.CodeUnavailable, "redis down"))
	_, err = service.Register(s.ctx, &user.RegisterInput{Username: "ada", Password: "hunter2"})
	s.Assert().True(errors.IsInternal(err))

	repo.EXPECT().Get(s.ctx, accountrepo.GetInput{Username: "ada"}).Return(nil, errors.New(errors.CodeUnavailable, "redis down"))
	_, err = service.Login(s.ctx, &user.LoginInput{Username: "ada", Password: "hunter2"})
	s.Assert().True(errors.IsInternal(err))
}
