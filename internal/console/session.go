package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/pit"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/shop"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/clock"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/idgen"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/logging"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/namegen"
	fightrecord "github.com/KirkDiggler/cyber-pit/internal/repositories/fight_record"
	"github.com/KirkDiggler/cyber-pit/internal/services/account"
	"github.com/KirkDiggler/cyber-pit/internal/services/user"
)

// Menu actions
const (
	ActionBattle  = "battle"
	ActionRobot   = "robot"
	ActionShop    = "shop"
	ActionHistory = "history"
	ActionQuit    = "quit"
)

var menu = []struct {
	action string
	desc   string
}{
	{ActionBattle, "Enter the pit and fight!"},
	{ActionRobot, "Show your robot details."},
	{ActionShop, "Enter the robot shop."},
	{ActionHistory, "Show your recent fights."},
	{ActionQuit, "Exit the game."},
}

// Users registers and authenticates players
type Users interface {
	Register(ctx context.Context, input *user.RegisterInput) (*user.RegisterOutput, error)
	Login(ctx context.Context, input *user.LoginInput) (*user.LoginOutput, error)
}

// Config holds a session's dependencies
type Config struct {
	Operator      fight.Operator
	Users         Users
	Catalog       *robot.Catalog
	Records       fightrecord.Repository
	EventBus      events.EventBus
	Roller        dice.Roller
	Names         namegen.Generator
	FightIDs      idgen.Generator
	RobotIDs      idgen.Generator
	Clock         clock.Clock
	PayoutPercent int
	HistoryLimit  int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Operator == nil {
		vb.RequiredField("Operator")
	}
	if c.Users == nil {
		vb.RequiredField("Users")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Records == nil {
		vb.RequiredField("Records")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Names == nil {
		vb.RequiredField("Names")
	}
	if c.FightIDs == nil {
		vb.RequiredField("FightIDs")
	}
	if c.RobotIDs == nil {
		vb.RequiredField("RobotIDs")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateRange("PayoutPercent", c.PayoutPercent, 0, 100, vb)
	if c.HistoryLimit < 0 {
		vb.Field("HistoryLimit", "cannot be negative")
	}
	return vb.Build()
}

// Session is one player's visit: login, then the main menu until quit
type Session struct {
	cfg      *Config
	operator fight.Operator
	logger   zerolog.Logger
}

// player is the logged in user
type player struct {
	username string
	robot    *robot.Instance
	ledger   *account.Ledger
	isNew    bool
}

// NewSession creates a session
func NewSession(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session config")
	}

	return &Session{
		cfg:      cfg,
		operator: cfg.Operator,
		logger:   logging.For("console"),
	}, nil
}

// Run plays until the player quits or input ends. Only errors the game
// cannot recover from are returned.
func (s *Session) Run(ctx context.Context) error {
	err := s.run(ctx)
	if errors.IsCanceled(err) {
		s.logger.Debug().Err(err).Msg("session ended by input")
		s.operator.Say("Bye.")
		return nil
	}
	return err
}

func (s *Session) run(ctx context.Context) error {
	p, err := s.authenticate(ctx)
	if err != nil {
		return err
	}

	robotShop, err := shop.New(&shop.Config{
		Catalog:     s.cfg.Catalog,
		Ledger:      p.ledger,
		Roller:      s.cfg.Roller,
		IDGenerator: s.cfg.RobotIDs,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open shop")
	}

	arena, err := pit.New(&pit.Config{
		Username:      p.username,
		Catalog:       s.cfg.Catalog,
		Ledger:        p.ledger,
		Records:       s.cfg.Records,
		Operator:      s.operator,
		EventBus:      s.cfg.EventBus,
		Roller:        s.cfg.Roller,
		Names:         s.cfg.Names,
		FightIDs:      s.cfg.FightIDs,
		RobotIDs:      s.cfg.RobotIDs,
		Clock:         s.cfg.Clock,
		PayoutPercent: s.cfg.PayoutPercent,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open pit")
	}
	defer func() {
		if err := arena.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to close pit")
		}
	}()

	renderer, err := NewRenderer(s.cfg.EventBus, s.operator)
	if err != nil {
		return errors.Wrap(err, "failed to create renderer")
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to close renderer")
		}
	}()

	if p.isNew {
		if err := s.shopping(ctx, p, robotShop); err != nil {
			return err
		}
	}

	for {
		if err := s.header(ctx, p); err != nil {
			return err
		}

		line, err := s.operator.Prompt(ctx, "Pick your action.")
		if err != nil {
			return err
		}

		switch action := normalize(line); action {
		case ActionBattle:
			err = s.battle(ctx, p, arena)
		case ActionRobot:
			s.showRobot(p)
		case ActionShop:
			err = s.shopping(ctx, p, robotShop)
		case ActionHistory:
			err = s.history(ctx, arena)
		case ActionQuit:
			s.operator.Say("Bye.")
			return nil
		default:
			s.operator.Say(fmt.Sprintf("%q is not an option.", strings.TrimSpace(line)))
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) authenticate(ctx context.Context) (*player, error) {
	for {
		name, err := s.operator.Prompt(ctx, "Enter your username, or press Enter to create a user:")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return s.register(ctx)
		}

		p, err := s.login(ctx, name)
		if err != nil {
			if errors.IsNotFound(err) {
				s.operator.Say(fmt.Sprintf("User %q does not exist.", name))
				continue
			}
			return nil, err
		}
		return p, nil
	}
}

func (s *Session) login(ctx context.Context, name string) (*player, error) {
	for {
		password, err := s.operator.Prompt(ctx, "Password:")
		if err != nil {
			return nil, err
		}

		out, err := s.cfg.Users.Login(ctx, &user.LoginInput{Username: name, Password: password})
		if err != nil {
			if errors.IsUnauthenticated(err) {
				s.operator.Say(":-(")
				continue
			}
			return nil, err
		}

		s.operator.Say("<-- ACCESS GRANTED -->")
		return &player{
			username: out.Account.Username,
			robot:    out.Robot,
			ledger:   out.Ledger,
		}, nil
	}
}

func (s *Session) register(ctx context.Context) (*player, error) {
	for {
		name, err := s.operator.Prompt(ctx, "Enter username for new user:")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			s.operator.Say("Username invalid.")
			continue
		}

		password, err := s.operator.Prompt(ctx, "Enter password for new user:")
		if err != nil {
			return nil, err
		}
		confirm, err := s.operator.Prompt(ctx, "Confirm the password for new user:")
		if err != nil {
			return nil, err
		}
		if password != confirm {
			s.operator.Say("Passwords do not match.")
			continue
		}

		out, err := s.cfg.Users.Register(ctx, &user.RegisterInput{Username: name, Password: password})
		if err != nil {
			switch {
			case errors.IsAlreadyExists(err):
				s.operator.Say(fmt.Sprintf("User with name %q already exists.", name))
				continue
			case errors.IsInvalidArgument(err):
				s.operator.Say(fmt.Sprintf("Passwords are %d to %d characters.",
					user.MinPasswordLength, user.MaxPasswordLength))
				continue
			}
			return nil, err
		}

		s.operator.Say("It seems you are new here.")
		s.operator.Say(fmt.Sprintf("You were granted %d BTC for a start, use them wisely!", out.Account.Balance))
		return &player{
			username: out.Account.Username,
			ledger:   out.Ledger,
			isNew:    true,
		}, nil
	}
}

func (s *Session) header(ctx context.Context, p *player) error {
	balance, err := p.ledger.CurrentBalance(ctx)
	if err != nil {
		return err
	}

	s.operator.Say("----------------------------")
	s.operator.Say(strings.ToUpper(p.username))
	if p.robot != nil {
		s.operator.Say(fmt.Sprintf("Your current robot: %s", p.robot.Name()))
	} else {
		s.operator.Say("You don't have any robot yet.")
	}
	s.operator.Say(fmt.Sprintf("Your balance: %d BTC", balance))
	for _, item := range menu {
		s.operator.Say(fmt.Sprintf("o %s - %s", item.action, item.desc))
	}
	return nil
}

func (s *Session) showRobot(p *player) {
	if p.robot == nil {
		s.operator.Say("You don't have any robot yet.")
		return
	}
	s.operator.Say(fmt.Sprintf("%s [%s]", p.robot.Name(), p.robot.Template().Name))
	s.operator.Say(DescribeBuild(s.cfg.Catalog, p.robot.Template()))
}

func (s *Session) shopping(ctx context.Context, p *player, robotShop *shop.Shop) error {
	for {
		balance, err := p.ledger.CurrentBalance(ctx)
		if err != nil {
			return err
		}

		s.operator.Say("*** WELCOME TO THE ROBOT SHOP ***")
		s.operator.Say(fmt.Sprintf("$$$ Current balance: %d BTC.", balance))
		for _, listing := range robotShop.ListAffordable(balance) {
			line := fmt.Sprintf("o %s - %d BTC - %s", listing.Name, listing.Cost, listing.Description)
			if !listing.Affordable {
				line += " (out of budget)"
			}
			s.operator.Say(line)
			if tmpl, ok := s.cfg.Catalog.Lookup(listing.Name); ok {
				s.operator.Say("  " + DescribeBuild(s.cfg.Catalog, tmpl))
			}
		}

		build, err := s.operator.Prompt(ctx, `Select a robot you wish to buy (type "cancel" to return to the menu):`)
		if err != nil {
			return err
		}
		if normalize(build) == shop.TokenCancel {
			return nil
		}
		if _, ok := s.cfg.Catalog.Lookup(build); !ok {
			s.operator.Say(fmt.Sprintf("%q is not a robot build.", strings.TrimSpace(build)))
			continue
		}

		name, err := s.operator.Prompt(ctx, "Name your new robot:")
		if err != nil {
			return err
		}

		out, err := robotShop.Purchase(ctx, &shop.PurchaseInput{BuildName: build, RobotName: name})
		if err != nil {
			switch {
			case errors.IsFailedPrecondition(err):
				s.operator.Say("$$$ Insufficient funds :(")
				continue
			case errors.IsInvalidArgument(err):
				s.operator.Say(fmt.Sprintf("Robot names are %d to %d characters.",
					robot.MinNameLength, robot.MaxNameLength))
				continue
			}
			return err
		}

		p.robot = out.Robot
		s.operator.Say(fmt.Sprintf("$$$ %d BTC paid. %s is yours.", out.Robot.Template().Cost, out.Robot.Name()))
		return nil
	}
}

func (s *Session) battle(ctx context.Context, p *player, arena *pit.Pit) error {
	if p.robot == nil {
		s.operator.Say("You need a robot to enter the pit. Visit the shop first.")
		return nil
	}

	out, err := arena.Challenge(ctx, &pit.ChallengeInput{Player: p.robot})
	if err != nil {
		return err
	}
	f := out.Fight

	s.operator.Say("WELCOME! To The Pit!")
	s.operator.Say(fmt.Sprintf("Today, you stand against %s [%s].",
		f.Opponent().Name(), f.Opponent().Template().Name))

	accepted, err := f.Accepted(ctx)
	if err != nil {
		return err
	}
	if accepted {
		if _, err := f.RunToCompletion(ctx); err != nil {
			return err
		}
	} else {
		s.operator.Say("You slip out before the bell.")
	}

	if _, err := arena.Settle(ctx, &pit.SettleInput{Fight: f}); err != nil {
		return err
	}
	return nil
}

func (s *Session) history(ctx context.Context, arena *pit.Pit) error {
	out, err := arena.History(ctx, &pit.HistoryInput{Limit: s.cfg.HistoryLimit})
	if err != nil {
		return err
	}
	if len(out.Records) == 0 {
		s.operator.Say("No fights yet.")
		return nil
	}
	for _, rec := range out.Records {
		s.operator.Say(FormatRecord(rec))
	}
	return nil
}

// FormatRecord renders a stored fight as one line
func FormatRecord(rec *fightrecord.Record) string {
	verdict := "lost"
	switch rec.Winner {
	case string(fight.WinnerPlayer):
		verdict = fmt.Sprintf("won %d BTC", rec.Payout)
	case string(fight.WinnerDraw):
		verdict = "draw"
	}
	return fmt.Sprintf("%s %s vs %s [%s]: %s after %d rounds",
		rec.FinishedAt.Format(time.DateTime), rec.PlayerRobot,
		rec.OpponentName, rec.OpponentBuild, verdict, rec.Rounds)
}

// DescribeBuild renders a build's stats and loadout as one line
func DescribeBuild(catalog *robot.Catalog, tmpl *robot.BuildTemplate) string {
	weapons := make([]string, 0, len(tmpl.Weapons))
	for _, w := range tmpl.Weapons {
		cost, err := catalog.Weapons().Cost(w)
		if err != nil {
			weapons = append(weapons, w)
			continue
		}
		weapons = append(weapons, fmt.Sprintf("%s (%d)", w, cost))
	}
	return fmt.Sprintf("health %d, energy %d, dodge %d%%, miss %d%%, weapons: %s",
		tmpl.Health, tmpl.Energy, tmpl.DodgeChance, tmpl.MissChance, strings.Join(weapons, ", "))
}

func normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}
