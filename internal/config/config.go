package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ericogr/pet-arena/internal/game"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration sourced from the environment.
type Env struct {
	ServerAddress   string        `env:"ARENA_ADDR" envDefault:":8080"`
	DBPath          string        `env:"ARENA_DB" envDefault:"./data/arena.db"`
	ConfigPath      string        `env:"ARENA_CONFIG" envDefault:"./arena_config.json"`
	SessionSecret   string        `env:"ARENA_SESSION_SECRET,required"`
	AdminToken      string        `env:"ARENA_ADMIN_TOKEN,required"`
	BlockInterval   time.Duration `env:"ARENA_BLOCK_INTERVAL" envDefault:"6s"`
	StartingBalance int64         `env:"ARENA_STARTING_BALANCE" envDefault:"1000"`
}

// LoadEnv parses the process environment.
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &e, nil
}

type rawConfig struct {
	BattleParameters *game.BattleParameters `json:"battle_parameters"`
}

// LoadedConfig contains the battle tuning used to seed the parameters
// singleton on first start.
type LoadedConfig struct {
	BattleParameters game.BattleParameters
}

// LoadConfig reads the balance configuration at path. The file is
// optional: when absent, the built-in defaults apply. Present files
// must pass the same sanity checks the admin endpoint enforces.
func LoadConfig(path string) (*LoadedConfig, error) {
	out := &LoadedConfig{BattleParameters: game.DefaultBattleParameters()}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if rc.BattleParameters == nil {
		return out, nil
	}

	p := rc.BattleParameters
	if p.MaxTurns <= 0 {
		return nil, fmt.Errorf("config file %s: max_turns must be positive", path)
	}
	if p.ChallengeExpiryBlocks == 0 {
		return nil, fmt.Errorf("config file %s: challenge_expiry_blocks must be positive", path)
	}
	if p.CriticalHitChance < 0 || p.CriticalHitChance > 100 {
		return nil, fmt.Errorf("config file %s: critical_hit_chance must be within 0..100", path)
	}
	if p.InitialEnergy < 0 || p.InitialEnergy > game.MaxEnergy {
		return nil, fmt.Errorf("config file %s: initial_energy must be within 0..%d", path, game.MaxEnergy)
	}
	if p.UltimateEnergyCost <= 0 {
		return nil, fmt.Errorf("config file %s: ultimate_move_energy_cost must be positive", path)
	}
	if p.MatchmakingMaxRatingGap <= 0 {
		return nil, fmt.Errorf("config file %s: matchmaking_max_rating_gap must be positive", path)
	}
	out.BattleParameters = *p
	return out, nil
}
