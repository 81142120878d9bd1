package game

import "gorm.io/gorm"

// BattleParameters is the global tunable singleton read by nearly every
// battle operation. Percent fields are plain integer percentages
// (150 = x1.5); currency fields are int64 like account balances.
type BattleParameters struct {
	gorm.Model
	ChallengeBondAmount   int64  `json:"challenge_bond_amount"`
	ForfeitPenalty        int64  `json:"forfeit_penalty"`
	BaseRewardAmount      int64  `json:"base_reward_amount"`
	BaseExperienceReward  int    `json:"base_experience_reward"`
	ChallengeExpiryBlocks uint64 `json:"challenge_expiry_blocks"`
	MaxTurns              int    `json:"max_turns"`

	ElementalAdvantagePercent    int `json:"elemental_advantage_percent"`
	CriticalHitChance            int `json:"critical_hit_chance"`
	CriticalHitMultiplierPercent int `json:"critical_hit_multiplier_percent"`

	// Combo tuning is persisted for forward compatibility; no rule
	// reads it yet (the combo counters only record usage).
	ComboThreshold    int `json:"combo_threshold"`
	ComboBonusPercent int `json:"combo_bonus_percent"`

	StatusEffectDefaultDuration int `json:"status_effect_default_duration"`

	InitialEnergy      int `json:"initial_energy"`
	EnergyPerTurn      int `json:"energy_per_turn"`
	UltimateEnergyCost int `json:"ultimate_energy_cost"`

	MatchmakingRatingChange int `json:"matchmaking_rating_change"`
	MatchmakingMaxRatingGap int `json:"matchmaking_max_rating_gap"`

	MaxActiveBattlesPerAccount int `json:"max_active_battles_per_account"`
}

func (BattleParameters) TableName() string { return "battle_parameters" }

// DefaultBattleParameters returns the baseline tuning. The combat
// numbers reproduce the documented move formulas (crit = draw < 20 for
// x2, elemental advantage x1.5).
func DefaultBattleParameters() BattleParameters {
	return BattleParameters{
		ChallengeBondAmount:   100,
		ForfeitPenalty:        50,
		BaseRewardAmount:      100,
		BaseExperienceReward:  50,
		ChallengeExpiryBlocks: 100,
		MaxTurns:              50,

		ElementalAdvantagePercent:    150,
		CriticalHitChance:            20,
		CriticalHitMultiplierPercent: 200,

		ComboThreshold:    3,
		ComboBonusPercent: 25,

		StatusEffectDefaultDuration: 3,

		InitialEnergy:      50,
		EnergyPerTurn:      10,
		UltimateEnergyCost: 80,

		MatchmakingRatingChange: 25,
		MatchmakingMaxRatingGap: 200,

		MaxActiveBattlesPerAccount: 3,
	}
}
