package apply

import (
	"testing"

	"github.com/example/applypilot/internal/models"
)

func TestCanOpen(t *testing.T) {
	tests := []struct {
		name        string
		ctx         OpenContext
		wantAllowed bool
	}{
		{
			name: "apply decision with no prior submission",
			ctx: OpenContext{
				ListingID: "L-1",
				Decision:  models.FilterDecision{ListingID: "L-1", Outcome: models.FilterApply},
			},
			wantAllowed: true,
		},
		{
			name: "filter skip blocks opening",
			ctx: OpenContext{
				ListingID: "L-1",
				Decision: models.FilterDecision{
					ListingID: "L-1",
					Outcome:   models.FilterSkip,
					Reason:    models.ReasonBadWord,
				},
			},
			wantAllowed: false,
		},
		{
			name: "prior submitted record blocks opening",
			ctx: OpenContext{
				ListingID:        "L-1",
				Decision:         models.FilterDecision{ListingID: "L-1", Outcome: models.FilterApply},
				AlreadySubmitted: true,
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanOpen(tt.ctx)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("CanOpen() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllowed, got.Reason)
			}
			if !tt.wantAllowed && got.Reason == "" {
				t.Error("CanOpen() denied without a reason")
			}
		})
	}
}

func TestFieldFatal(t *testing.T) {
	tests := []struct {
		name        string
		ctx         FieldContext
		wantAllowed bool
	}{
		{"required field with value", FieldContext{Field: "phone", Value: "555", Required: true}, true},
		{"required field without value", FieldContext{Field: "phone", Required: true}, false},
		{"optional field without value", FieldContext{Field: "website"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldFatal(tt.ctx); got.Allowed != tt.wantAllowed {
				t.Errorf("FieldFatal() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name        string
		ctx         SubmitContext
		wantAllowed bool
	}{
		{
			name:        "no pause configured",
			ctx:         SubmitContext{ListingID: "L-1"},
			wantAllowed: true,
		},
		{
			name: "pause configured and operator confirmed",
			ctx: SubmitContext{
				ListingID:         "L-1",
				PauseBeforeSubmit: true,
				OperatorConfirmed: true,
			},
			wantAllowed: true,
		},
		{
			name: "pause configured and operator declined",
			ctx: SubmitContext{
				ListingID:         "L-1",
				PauseBeforeSubmit: true,
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanSubmit(tt.ctx); got.Allowed != tt.wantAllowed {
				t.Errorf("CanSubmit() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllowed, got.Reason)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []State{StateSubmitted, StateFailed, StateSkipped} {
		if !Terminal(s) {
			t.Errorf("Terminal(%s) = false, want true", s)
		}
	}
	for _, s := range []State{StateFiltering, StateOpening, StateReviewPending, StateSubmitting} {
		if Terminal(s) {
			t.Errorf("Terminal(%s) = true, want false", s)
		}
	}
}
