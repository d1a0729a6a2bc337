package fight_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cyber-pit/internal/entities/robot"
	"github.com/KirkDiggler/cyber-pit/internal/errors"
	"github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight"
	fightmock "github.com/KirkDiggler/cyber-pit/internal/orchestrators/fight/mock"
	"github.com/KirkDiggler/cyber-pit/internal/pkg/rng"
)

// sure never dodges and never misses
var sure = rng.Always(100)

type FightTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockWallet *fightmock.MockWallet
	bus        *recordingBus
	ctx        context.Context
}

func TestFightSuite(t *testing.T) {
	suite.Run(t, new(FightTestSuite))
}

func (s *FightTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockWallet = fightmock.NewMockWallet(s.ctrl)
	s.bus = &recordingBus{}
	s.ctx = context.Background()
}

func (s *FightTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FightTestSuite) newFight(player, opponent *robot.Instance, operator fight.Operator) *fight.Fight {
	evaluator, err := fight.NewEvaluator(&fight.EvaluatorConfig{
		Wallet:        s.mockWallet,
		PayoutPercent: fight.DefaultPayoutPercent,
	})
	s.Require().NoError(err)

	f, err := fight.New(&fight.Config{
		ID:        "fight_1",
		Player:    player,
		Opponent:  opponent,
		Operator:  operator,
		EventBus:  s.bus,
		Evaluator: evaluator,
		Roller:    sure,
	})
	s.Require().NoError(err)
	return f
}

func (s *FightTestSuite) accept(f *fight.Fight) {
	ok, err := f.Accepted(s.ctx)
	s.Require().NoError(err)
	s.Require().True(ok)
}

func tmpl(health, energy int, weapons ...string) robot.BuildTemplate {
	return robot.BuildTemplate{
		Name: "Test", Health: health, Energy: energy, Cost: 300, Weapons: weapons,
	}
}

func (s *FightTestSuite) TestNew_Validation() {
	_, err := fight.New(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = fight.New(&fight.Config{})
	s.Require().Error(err)
	for _, field := range []string{"ID", "Player", "Opponent", "Operator", "EventBus", "Evaluator", "Roller"} {
		s.Assert().Contains(err.Error(), field)
	}

	same := newRobot("twin", tmpl(10, 10, robot.WeaponSpike), sure)
	_, err = fight.New(&fight.Config{ID: "f", Player: same, Opponent: same})
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "must not be the player's robot")
}

func (s *FightTestSuite) TestAccepted_Fight() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)

	operator := fightmock.NewMockOperator(s.ctrl)
	gomock.InOrder(
		operator.EXPECT().Prompt(s.ctx, gomock.Any()).Return("dance", nil),
		operator.EXPECT().Say(gomock.Any()),
		operator.EXPECT().Prompt(s.ctx, gomock.Any()).Return("stats", nil),
		operator.EXPECT().Say(gomock.Any()),
		operator.EXPECT().Prompt(s.ctx, gomock.Any()).Return("  FIGHT ", nil),
	)

	f := s.newFight(player, opponent, operator)
	ok, err := f.Accepted(s.ctx)
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal(fight.StateAccepted, f.State())
	s.Assert().Empty(s.bus.published)

	_, err = f.Accepted(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *FightTestSuite) TestAccepted_FleeIsTerminal() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)

	operator := fightmock.NewMockOperator(s.ctrl)
	operator.EXPECT().Prompt(s.ctx, gomock.Any()).Return("flee", nil)

	f := s.newFight(player, opponent, operator)
	ok, err := f.Accepted(s.ctx)
	s.Require().NoError(err)
	s.Assert().False(ok)
	s.Assert().Equal(fight.StateDeclined, f.State())
	s.Assert().True(f.State().Terminal())

	_, err = f.RunToCompletion(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Empty(s.bus.published)
	s.Assert().Equal(20, player.Health())
	s.Assert().Equal(20, player.Energy())
	s.Assert().Equal(0, f.Round())
}

func (s *FightTestSuite) TestAccepted_OperatorFailure() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)

	operator := fightmock.NewMockOperator(s.ctrl)
	operator.EXPECT().Prompt(s.ctx, gomock.Any()).Return("", errors.Canceled("input closed"))

	f := s.newFight(player, opponent, operator)
	_, err := f.Accepted(s.ctx)
	s.Assert().True(errors.IsCanceled(err))
	s.Assert().Equal(fight.StateProposed, f.State())
}

func (s *FightTestSuite) TestRunToCompletion_RequiresAccepted() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)

	f := s.newFight(player, opponent, &scriptOperator{})
	_, err := f.RunToCompletion(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Equal(fight.StateProposed, f.State())
}

func (s *FightTestSuite) TestPlayerWinsAndIsPaid() {
	player := newRobot("player", tmpl(30, 20, robot.WeaponLaser), sure)
	opponent := newRobot("opponent", tmpl(6, 20, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight", "laser"}}

	s.mockWallet.EXPECT().Credit(s.ctx, 150).Return(nil)

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerPlayer, result.Winner)
	s.Assert().Equal(150, result.Payout)
	s.Assert().Equal(1, result.Rounds)
	s.Assert().Equal(fight.StatePlayerWon, f.State())
	s.Assert().Equal(result, f.Result())

	// Destroyed opponent loses its turn silently
	attacks := s.bus.attacks()
	s.Require().Len(attacks, 1)
	s.Assert().Equal(fight.SidePlayer, attacks[0].Side)
	s.Assert().Equal(fight.OutcomeHit, attacks[0].Outcome)
	s.Assert().Equal(6, attacks[0].Damage)
	s.Assert().Equal(0, attacks[0].DefenderHealth)
	s.Assert().Empty(s.bus.skipped())

	ended := s.bus.ended()
	s.Require().NotNil(ended)
	s.Assert().Equal(*result, ended.Result)
	s.Assert().Equal(0, ended.OpponentHealth)
}

func (s *FightTestSuite) TestOpponentWins() {
	player := newRobot("player", tmpl(3, 2, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponLaser), sure)
	operator := &scriptOperator{lines: []string{"fight", "spike"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerOpponent, result.Winner)
	s.Assert().Zero(result.Payout)
	s.Assert().Equal(fight.StateOpponentWon, f.State())
	s.Assert().Equal(18, opponent.Health())
	s.Assert().Equal(-3, player.Health())
}

func (s *FightTestSuite) TestMutualExhaustionIsDraw() {
	player := newRobot("player", tmpl(20, 2, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 2, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight", "spike"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerDraw, result.Winner)
	s.Assert().Zero(result.Payout)
	s.Assert().Equal(1, result.Rounds)
	s.Assert().Equal(fight.StateDraw, f.State())
	s.Assert().Equal(18, player.Health())
	s.Assert().Equal(18, opponent.Health())
	s.Assert().Len(s.bus.attacks(), 2)
}

func (s *FightTestSuite) TestRefusedWeaponRePrompts() {
	player := newRobot("player", tmpl(20, 5, robot.WeaponLaser, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(2, 20, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight", "rocket", "stats", "laser", "Spike"}}

	s.mockWallet.EXPECT().Credit(s.ctx, 150).Return(nil)

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(fight.WinnerPlayer, result.Winner)

	attacks := s.bus.attacks()
	s.Require().Len(attacks, 2)
	s.Assert().Equal(fight.OutcomeRefused, attacks[0].Outcome)
	s.Assert().Equal(robot.WeaponLaser, attacks[0].Weapon)
	s.Assert().Equal(5, attacks[0].AttackerEnergy)
	s.Assert().Equal(fight.OutcomeHit, attacks[1].Outcome)
	s.Assert().Equal(3, player.Energy())

	// Four weapon prompts for one turn
	s.Assert().Len(operator.prompts, 5)
	s.Require().Len(operator.said, 2)
	s.Assert().Contains(operator.said[0], "rocket")
	s.Assert().Contains(operator.said[1], "health")
}

func (s *FightTestSuite) TestExhaustedTurnIsReported() {
	player := newRobot("player", tmpl(3, 1, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 4, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerOpponent, result.Winner)
	s.Assert().Equal(2, result.Rounds)

	skipped := s.bus.skipped()
	s.Require().Len(skipped, 2)
	for _, sk := range skipped {
		s.Assert().Equal(fight.SidePlayer, sk.Side)
		s.Assert().Equal(fight.ReasonExhausted, sk.Reason)
	}
	// Only the challenge was prompted
	s.Assert().Len(operator.prompts, 1)
}

func (s *FightTestSuite) TestDestroyedAndExhaustedOpponentIsSilent() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(2, 1, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight", "spike"}}

	s.mockWallet.EXPECT().Credit(s.ctx, 150).Return(nil)

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerPlayer, result.Winner)
	s.Assert().Equal(1, result.Rounds)
	s.Assert().Equal(0, opponent.Health())
	s.Assert().True(opponent.IsExhausted())
	s.Assert().Empty(s.bus.skipped())
	s.Assert().Len(s.bus.attacks(), 1)
}

func (s *FightTestSuite) TestDodgeAndMiss() {
	// Roll of 1 is below every non-zero chance
	dodgy := robot.BuildTemplate{
		Name: "Dodgy", Health: 10, Energy: 4, DodgeChance: 50, MissChance: 50, Cost: 100,
		Weapons: []string{robot.WeaponSpike},
	}
	player := newRobot("player", dodgy, rng.Always(1))
	opponent := newRobot("opponent", dodgy, rng.Always(1))
	operator := &scriptOperator{lines: []string{"fight", "spike", "spike"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	result, err := f.RunToCompletion(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(fight.WinnerDraw, result.Winner)
	for _, a := range s.bus.attacks() {
		s.Assert().Equal(fight.OutcomeMissed, a.Outcome)
		s.Assert().Zero(a.Damage)
	}
	s.Assert().Equal(10, player.Health())
	s.Assert().Equal(0, player.Energy())
}

func (s *FightTestSuite) TestAbandonedFightStaysInProgress() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight", "spike"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)
	_, err := f.RunToCompletion(s.ctx)
	s.Require().Error(err)
	s.Assert().True(errors.IsCanceled(err))
	s.Assert().Equal(fight.StateInProgress, f.State())
	s.Assert().Nil(f.Result())
	s.Assert().Nil(s.bus.ended())
}

func (s *FightTestSuite) TestCancelledContext() {
	player := newRobot("player", tmpl(20, 20, robot.WeaponSpike), sure)
	opponent := newRobot("opponent", tmpl(20, 20, robot.WeaponSpike), sure)
	operator := &scriptOperator{lines: []string{"fight"}}

	f := s.newFight(player, opponent, operator)
	s.accept(f)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := f.RunToCompletion(ctx)
	s.Assert().True(errors.IsCanceled(err))
	s.Assert().Equal(0, f.Round())
}

// Fights between random builds always end, within the energy bound
func TestFightAlwaysTerminates(t *testing.T) {
	builds := []robot.BuildTemplate{
		{Name: "Heavy", Health: 30, Energy: 20, DodgeChance: 5, MissChance: 5, Cost: 300,
			Weapons: []string{robot.WeaponLaser, robot.WeaponBumper, robot.WeaponSaw}},
		{Name: "Light", Health: 15, Energy: 20, DodgeChance: 20, MissChance: 5, Cost: 250,
			Weapons: []string{robot.WeaponSpike, robot.WeaponSaw, robot.WeaponFlipper}},
		{Name: "Brute", Health: 45, Energy: 20, DodgeChance: 5, MissChance: 15, Cost: 400,
			Weapons: []string{robot.WeaponBumper, robot.WeaponFlameThrower, robot.WeaponSpike}},
		{Name: "Duracell", Health: 15, Energy: 35, DodgeChance: 10, MissChance: 10, Cost: 350,
			Weapons: []string{robot.WeaponLaser, robot.WeaponPlasmaGun, robot.WeaponSpike}},
	}
	ctx := context.Background()

	weapons := robot.DefaultWeapons()
	minCost := 0
	for _, w := range weapons.Names() {
		cost, err := weapons.Cost(w)
		if err != nil {
			t.Fatal(err)
		}
		if minCost == 0 || cost < minCost {
			minCost = cost
		}
	}

	for seed := uint64(1); seed <= 200; seed++ {
		roller := rng.NewSeeded(seed)
		pb := builds[int(seed)%len(builds)]
		ob := builds[int(seed/4)%len(builds)]

		player := newRobot("player", pb, roller)
		opponent := newRobot("opponent", ob, roller)

		evaluator, err := fight.NewEvaluator(&fight.EvaluatorConfig{Wallet: &purse{}, PayoutPercent: 50})
		if err != nil {
			t.Fatal(err)
		}
		f, err := fight.New(&fight.Config{
			ID:        fmt.Sprintf("fight_%d", seed),
			Player:    player,
			Opponent:  opponent,
			Operator:  &autopilot{robot: player},
			EventBus:  &recordingBus{},
			Evaluator: evaluator,
			Roller:    roller,
		})
		if err != nil {
			t.Fatal(err)
		}
		if ok, err := f.Accepted(ctx); err != nil || !ok {
			t.Fatalf("seed %d: autopilot should accept: %v", seed, err)
		}
		result, err := f.RunToCompletion(ctx)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !f.State().Terminal() {
			t.Fatalf("seed %d: fight ended in %s", seed, f.State())
		}

		bound := (pb.Energy+ob.Energy)/minCost + 1
		if result.Rounds > bound {
			t.Fatalf("seed %d: %d rounds exceeds bound %d", seed, result.Rounds, bound)
		}
	}
}
