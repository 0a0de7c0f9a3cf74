package parameter

// Shot Tuning
const (
	// ApexHeight is the fixed peak height of every solved arc, meters
	ApexHeight = 4.5

	// ShotStartHeight lifts the release point above the shooter's feet
	ShotStartHeight = 1.8

	// MinPowerFraction is launch power at zero charge, as a fraction of the direct ideal
	MinPowerFraction = 0.3

	// MaxPowerMultiplier is launch power at full charge, as a multiple of the direct ideal
	MaxPowerMultiplier = 1.2

	// PerfectThreshold is the relative power deviation still counted as perfect
	PerfectThreshold = 0.1
)

// NPC Behaviour
const (
	NPCInitialDelaySeconds = 2.0
	NPCMinIntervalSeconds  = 1.5
	NPCMaxIntervalSeconds  = 2.5
	NPCPerfectChance       = 0.3
	NPCBankChance          = 0.4
	NPCBankBonusMultiplier = 1.5
	NPCAccuracyNoise       = 0.05
)
