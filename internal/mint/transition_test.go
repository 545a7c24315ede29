package mint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipasset-labs/nft-minter/internal/domain"
)

func TestTransition(t *testing.T) {
	testCases := []struct {
		name    string
		current domain.MintStage
		event   Event
		next    domain.MintStage
		wantErr bool
	}{
		{
			name:    "preparing publish",
			current: domain.MintStagePreparing,
			event:   EventPublish,
			next:    domain.MintStageSubmitting,
		},
		{
			name:    "preparing fail",
			current: domain.MintStagePreparing,
			event:   EventFail,
			next:    domain.MintStageFailed,
		},
		{
			name:    "submitting confirm",
			current: domain.MintStageSubmitting,
			event:   EventConfirm,
			next:    domain.MintStageConfirming,
		},
		{
			name:    "submitting fail",
			current: domain.MintStageSubmitting,
			event:   EventFail,
			next:    domain.MintStageFailed,
		},
		{
			name:    "confirming success",
			current: domain.MintStageConfirming,
			event:   EventSuccess,
			next:    domain.MintStageCompleted,
		},
		{
			name:    "confirming fail",
			current: domain.MintStageConfirming,
			event:   EventFail,
			next:    domain.MintStageFailed,
		},
		{
			name:    "preparing cannot confirm",
			current: domain.MintStagePreparing,
			event:   EventConfirm,
			wantErr: true,
		},
		{
			name:    "preparing cannot succeed",
			current: domain.MintStagePreparing,
			event:   EventSuccess,
			wantErr: true,
		},
		{
			name:    "submitting cannot succeed",
			current: domain.MintStageSubmitting,
			event:   EventSuccess,
			wantErr: true,
		},
		{
			name:    "completed is terminal",
			current: domain.MintStageCompleted,
			event:   EventFail,
			wantErr: true,
		},
		{
			name:    "failed is terminal",
			current: domain.MintStageFailed,
			event:   EventPublish,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Transition(tc.current, tc.event)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.next, next)
		})
	}
}
