package main

import (
	"time"

	"github.com/ericogr/pet-arena/internal/chain"
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/service"

	"github.com/go-co-op/gocron/v2"
)

// startBlockScheduler advances the block clock at a fixed interval and
// runs the per-block pipeline: status effect ticks, challenge expiry
// and the matchmaking sweep.
func startBlockScheduler(arena *service.Arena, clock *chain.Clock, interval time.Duration) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("Failed to create scheduler", err, nil)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			height, err := clock.Advance()
			if err != nil {
				logging.Error("failed to advance block height", err, logging.Fields{constants.LogFieldBlock: height})
				return
			}
			arena.ProcessTick(height)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logging.Fatal("Failed to schedule block job", err, nil)
	}

	sched.Start()
}
