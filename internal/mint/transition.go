package mint

import (
	"fmt"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

// Event drives the mint stage machine
type Event string

const (
	// EventPublish moves an attempt from preparing into metadata publishing
	EventPublish Event = "PUBLISH"
	// EventConfirm records that the mint transaction was accepted on chain
	EventConfirm Event = "CONFIRM"
	// EventSuccess finalizes a confirmed attempt
	EventSuccess Event = "SUCCESS"
	// EventFail aborts an attempt from any non-terminal stage
	EventFail Event = "FAIL"
)

// Progress checkpoints reported to callers polling mint state. Values within
// the SUBMITTING stage distinguish the metadata publish from the chain call.
const (
	ProgressPreparing  = 10
	ProgressPublishing = 30
	ProgressSubmitting = 50
	ProgressConfirming = 70
	ProgressCompleted  = 100
)

// transitions declares the legal mint stage machine. Stage writes go through
// Transition so an illegal move is an error instead of a silent field write.
var transitions = map[domain.MintStage]map[Event]domain.MintStage{
	domain.MintStagePreparing: {
		EventPublish: domain.MintStageSubmitting,
		EventFail:    domain.MintStageFailed,
	},
	domain.MintStageSubmitting: {
		EventConfirm: domain.MintStageConfirming,
		EventFail:    domain.MintStageFailed,
	},
	domain.MintStageConfirming: {
		EventSuccess: domain.MintStageCompleted,
		EventFail:    domain.MintStageFailed,
	},
}

// Transition returns the stage reached by applying event to current
func Transition(current domain.MintStage, event Event) (domain.MintStage, error) {
	next, ok := transitions[current][event]
	if !ok {
		return "", fmt.Errorf("illegal mint transition: %s on stage %s", event, current)
	}
	return next, nil
}
