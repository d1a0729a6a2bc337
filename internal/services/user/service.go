// Package user registers and authenticates players
package user

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	accountrepo "github.com/KirkDiggler/cyber-pit/internal/repositories/account"
	"github.com/KirkDiggler/cyber-pit/internal/services/account"
)

const (
	// MinPasswordLength is the shortest accepted password
	MinPasswordLength = 4

	// MaxPasswordLength is bcrypt's input limit
	MaxPasswordLength = 72
)

// Config holds the service's dependencies
type Config struct {
	Repository      accountrepo.Repository
	Catalog         *robot.Catalog
	Roller          dice.Roller
	StartingBalance int

	// HashCost is the bcrypt cost. Zero means bcrypt.DefaultCost.
	HashCost int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.StartingBalance < 0 {
		vb.Field("StartingBalance", "cannot be negative")
	}
	if c.HashCost != 0 {
		errors.ValidateRange("HashCost", c.HashCost, bcrypt.MinCost, bcrypt.MaxCost, vb)
	}
	return vb.Build()
}

// RegisterInput contains the new player's credentials
type RegisterInput struct {
	Username string
	Password string
}

// RegisterOutput contains the created account
type RegisterOutput struct {
	Account *accountrepo.Account
	Ledger  *account.Ledger
}

// LoginInput contains a player's credentials
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the player's account and restored robot.
// Robot is nil until one has been bought.
type LoginOutput struct {
	Account *accountrepo.Account
	Robot   *robot.Instance
	Ledger  *account.Ledger
}

// Service handles registration and login
type Service struct {
	repo            accountrepo.Repository
	catalog         *robot.Catalog
	roller          dice.Roller
	startingBalance int
	hashCost        int
	logger          zerolog.Logger
}

// New creates a user service
func New(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid user service config")
	}

	cost := cfg.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		repo:            cfg.Repository,
		catalog:         cfg.Catalog,
		roller:          cfg.Roller,
		startingBalance: cfg.StartingBalance,
		hashCost:        cost,
		logger:          logging.For("user"),
	}, nil
}

// Register creates an account holding the starting balance.
// Returns errors.InvalidArgument for a blank name or a bad password
// Returns errors.AlreadyExists if the name is taken
func (s *Service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	username := strings.TrimSpace(input.Username)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Username", username, vb)
	if len(input.Password) < MinPasswordLength || len(input.Password) > MaxPasswordLength {
		vb.Fieldf("Password", "must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	out, err := s.repo.Create(ctx, accountrepo.CreateInput{Account: &accountrepo.Account{
		Username:     username,
		PasswordHash: hash,
		Balance:      s.startingBalance,
	}})
	if err != nil {
		if errors.IsAlreadyExists(err) {
			return nil, errors.AlreadyExistsf("user %s already exists", username).WithMeta("username", username)
		}
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to create account")
	}

	ledger, err := s.ledger(username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Int("balance", out.Account.Balance).Msg("user registered")
	return &RegisterOutput{Account: out.Account, Ledger: ledger}, nil
}

// Login checks the password and restores the player's robot.
// Returns errors.NotFound for an unknown user
// Returns errors.Unauthenticated for a wrong password
// Returns errors.Misconfigured if the stored robot's build is not in the catalog
func (s *Service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, errors.InvalidArgument("username is required")
	}

	out, err := s.repo.Get(ctx, accountrepo.GetInput{Username: username})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("user %s does not exist", username).WithMeta("username", username)
		}
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to load account")
	}
	acc := out.Account

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(input.Password)); err != nil {
		s.logger.Debug().Str("username", username).Msg("wrong password")
		return nil, errors.Unauthenticated("wrong password")
	}

	var r *robot.Instance
	if acc.HasRobot() {
		r, err = s.restore(acc)
		if err != nil {
			return nil, err
		}
	}

	ledger, err := s.ledger(username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Bool("has_robot", r != nil).Msg("user logged in")
	return &LoginOutput{Account: acc, Robot: r, Ledger: ledger}, nil
}

func (s *Service) restore(acc *accountrepo.Account) (*robot.Instance, error) {
	// A stored build missing from the catalog is a deployment defect
	tmpl, err := s.catalog.Template(acc.RobotBuild)
	if err != nil {
		return nil, errors.Wrapf(err, "account %s owns an unknown build", acc.Username)
	}

	r, err := robot.NewInstance(&robot.InstanceConfig{
		ID:       acc.RobotID,
		Name:     acc.RobotName,
		Template: tmpl,
		Weapons:  s.catalog.Weapons(),
		Roller:   s.roller,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeMisconfigured, "failed to restore robot")
	}
	return r, nil
}

func (s *Service) ledger(username string) (*account.Ledger, error) {
	ledger, err := account.NewLedger(&account.Config{Repository: s.repo, Username: username})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ledger")
	}
	return ledger, nil
}
