package shot

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/physics"
)

func testGeometry() Geometry {
	return Geometry{
		Hoop:        mgl64.Vec3{0, 3.05, 7.6},
		BoardAnchor: mgl64.Vec3{0, 3.4, 8.0},
		BoardNormal: mgl64.Vec3{0, 0, -1},
		ApexHeight:  4.5,
		Gravity:     9.8,
	}
}

func testPair(t *testing.T) Pair {
	t.Helper()
	pair, err := Solve(mgl64.Vec3{0, 1.8, 1}, testGeometry())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	return pair
}

func sameDirection(a, b mgl64.Vec3) bool {
	return a.Normalize().ApproxEqualThreshold(b.Normalize(), 1e-9)
}

// TestClassifyIdealChargeIsPerfectDirect verifies the charge matching |direct| is perfect
func TestClassifyIdealChargeIsPerfectDirect(t *testing.T) {
	pair := testPair(t)
	tunings := []Tuning{
		{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.1},
		{MinPowerFraction: 0.5, MaxPowerMultiplier: 1.5, PerfectThreshold: 0},
		{MinPowerFraction: 0.1, MaxPowerMultiplier: 2.0, PerfectThreshold: 0.01},
	}

	for _, tun := range tunings {
		charge := tun.IdealCharge(pair.Direct.Magnitude, pair.Direct)
		c, err := Classify(charge, pair, tun)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !c.PerfectDirect {
			t.Errorf("Tuning %+v: expected perfect direct, diff %.3g", tun, c.DiffDirect)
		}
		if c.Kind != core.ShotDirect {
			t.Errorf("Tuning %+v: expected direct, got %s", tun, c.Kind)
		}
		if c.Velocity != pair.Direct.Velocity {
			t.Errorf("Perfect shot must keep ideal vector, got %v", c.Velocity)
		}
	}
}

// TestClassifyPerfectBank verifies a charge at the bank zone chooses the bank ideal
func TestClassifyPerfectBank(t *testing.T) {
	pair := testPair(t)
	tun := Tuning{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.02}

	charge := tun.IdealCharge(pair.Bank.Magnitude, pair.Direct)
	c, err := Classify(charge, pair, tun)
	if err != nil {
		t.Fatal(err)
	}

	if c.Kind != core.ShotBank || !c.PerfectBank {
		t.Fatalf("Expected perfect bank, got kind=%s perfectBank=%v", c.Kind, c.PerfectBank)
	}
	if c.PerfectDirect {
		t.Error("Direct should not be perfect at bank power")
	}
	if c.Velocity != pair.Bank.Velocity {
		t.Errorf("Expected ideal bank vector, got %v", c.Velocity)
	}
	if !c.SelectedPerfect() {
		t.Error("Expected selected trajectory to be perfect")
	}

	// Scoring flag stays tied to the direct verdict
	a := c.Attempt(core.Player, charge)
	if a.Perfect {
		t.Error("Expected attempt.Perfect to follow PerfectDirect")
	}
	if !a.PerfectBank || !a.IsBank() {
		t.Error("Expected attempt to record the bank verdict")
	}
}

// TestClassifyBothPerfectPrefersDirect verifies the tie-break toward direct
func TestClassifyBothPerfectPrefersDirect(t *testing.T) {
	pair := testPair(t)
	tun := Tuning{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.1}

	charge := tun.IdealCharge(pair.Direct.Magnitude, pair.Direct)
	c, _ := Classify(charge, pair, tun)
	if !c.PerfectDirect || !c.PerfectBank {
		t.Fatalf("Expected both perfect with wide threshold, diffs %.3f %.3f", c.DiffDirect, c.DiffBank)
	}
	if c.Kind != core.ShotDirect {
		t.Errorf("Expected direct, got %s", c.Kind)
	}
}

// TestClassifyImprecise verifies non-perfect shots scale the chosen direction to power
func TestClassifyImprecise(t *testing.T) {
	pair := testPair(t)
	tun := Tuning{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.1}

	cases := []struct {
		name   string
		charge float64
		kind   core.ShotKind
		ideal  Trajectory
	}{
		{"weak falls back to direct", 0, core.ShotDirect, pair.Direct},
		{"overcharged closer to bank", 1, core.ShotBank, pair.Bank},
		{"negative clamps to zero", -3, core.ShotDirect, pair.Direct},
		{"above one clamps to one", 7, core.ShotBank, pair.Bank},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Classify(tc.charge, pair, tun)
			if err != nil {
				t.Fatal(err)
			}
			if c.Kind != tc.kind {
				t.Fatalf("Expected %s, got %s", tc.kind, c.Kind)
			}
			if c.SelectedPerfect() {
				t.Fatal("Expected imprecise shot")
			}
			wantPower := tun.Power(tc.charge, pair.Direct)
			if math.Abs(c.Velocity.Len()-wantPower) > 1e-9 {
				t.Errorf("Expected power %.4f, got %.4f", wantPower, c.Velocity.Len())
			}
			if !sameDirection(c.Velocity, tc.ideal.Velocity) {
				t.Error("Imprecise shot must keep the ideal direction")
			}
		})
	}
}

// TestClassifyInvalidCandidates verifies infeasible trajectories are handled
func TestClassifyInvalidCandidates(t *testing.T) {
	pair := testPair(t)
	tun := Tuning{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.1}

	noBank := Pair{Direct: pair.Direct}
	c, err := Classify(1, noBank, tun)
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind != core.ShotDirect || c.PerfectBank {
		t.Errorf("Expected direct fallback, got %s", c.Kind)
	}

	if _, err := Classify(0.5, Pair{Bank: pair.Bank}, tun); !errors.Is(err, ErrNoTrajectory) {
		t.Errorf("Expected ErrNoTrajectory, got %v", err)
	}
}

// TestSolveReportsInfeasible verifies a too-low apex leaves both candidates invalid
func TestSolveReportsInfeasible(t *testing.T) {
	geo := testGeometry()
	geo.ApexHeight = 2.0

	pair, err := Solve(mgl64.Vec3{0, 1.8, 1}, geo)
	if !errors.Is(err, physics.ErrInfeasible) {
		t.Fatalf("Expected ErrInfeasible, got %v", err)
	}
	if pair.Direct.Valid || pair.Bank.Valid {
		t.Error("Expected both trajectories invalid")
	}
}

// TestPerfectZones verifies zone positions match classifier ideals
func TestPerfectZones(t *testing.T) {
	pair := testPair(t)
	tun := Tuning{MinPowerFraction: 0.3, MaxPowerMultiplier: 1.2, PerfectThreshold: 0.1}

	z := PerfectZones(pair, tun)
	if want := (1 - 0.3) / (1.2 - 0.3); math.Abs(z.Direct-want) > 1e-12 {
		t.Errorf("Expected direct zone %.4f, got %.4f", want, z.Direct)
	}
	if z.Bank <= z.Direct {
		t.Errorf("Bank zone %.4f should sit above direct %.4f", z.Bank, z.Direct)
	}
	if z.Threshold != 0.1 {
		t.Errorf("Expected threshold 0.1, got %f", z.Threshold)
	}

	if z := PerfectZones(Pair{Direct: pair.Direct}, tun); z.Bank >= 0 {
		t.Errorf("Expected negative bank zone without bank, got %f", z.Bank)
	}
}

// TestNPCShooterDraws verifies the opponent's probability model
func TestNPCShooterDraws(t *testing.T) {
	pair := testPair(t)
	rng := rand.New(rand.NewPCG(1, 2))

	always := NewNPCShooter(NPCTuning{PerfectChance: 1, BankChance: 1, BankBonusMultiplier: 1.5}, rng)
	c, err := always.Decide(pair, false)
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind != core.ShotBank || !c.Perfect() || c.Velocity != pair.Bank.Velocity {
		t.Errorf("Expected perfect ideal bank, got %+v", c)
	}

	never := NewNPCShooter(NPCTuning{PerfectChance: 0, BankChance: 0, AccuracyNoise: 0.05}, rng)
	for i := 0; i < 200; i++ {
		c, _ := never.Decide(pair, true)
		if c.Kind != core.ShotDirect || c.Perfect() {
			t.Fatalf("Draw %d: expected imprecise direct", i)
		}
		ratio := c.Velocity.Len() / pair.Direct.Magnitude
		if ratio < 0.95-1e-9 || ratio > 1.05+1e-9 {
			t.Fatalf("Draw %d: power factor %.4f outside noise band", i, ratio)
		}
		if !sameDirection(c.Velocity, pair.Direct.Velocity) {
			t.Fatal("Noise must not change direction")
		}
	}

	// Bank fallback when bank is infeasible
	c, _ = always.Decide(Pair{Direct: pair.Direct}, false)
	if c.Kind != core.ShotDirect {
		t.Errorf("Expected direct fallback, got %s", c.Kind)
	}
}

// TestNPCShooterBankBias verifies the bonus multiplier and its clamp
func TestNPCShooterBankBias(t *testing.T) {
	n := NewNPCShooter(NPCTuning{BankChance: 0.4, BankBonusMultiplier: 1.5}, rand.New(rand.NewPCG(3, 4)))
	if got := n.BankChance(false); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("Expected 0.4, got %f", got)
	}
	if got := n.BankChance(true); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("Expected 0.6, got %f", got)
	}

	capped := NewNPCShooter(NPCTuning{BankChance: 0.8, BankBonusMultiplier: 2}, nil)
	if got := capped.BankChance(true); got != 1 {
		t.Errorf("Expected clamp to 1, got %f", got)
	}

	// Frequency check over many draws
	pair := testPair(t)
	banks := 0
	const draws = 20000
	for i := 0; i < draws; i++ {
		c, _ := n.Decide(pair, true)
		if c.Kind == core.ShotBank {
			banks++
		}
	}
	if freq := float64(banks) / draws; math.Abs(freq-0.6) > 0.02 {
		t.Errorf("Expected bank frequency ~0.6, got %.3f", freq)
	}
}
