// Package incident turns raw race control messages into classified,
// severity-scored incidents and folds them into per-driver risk profiles.
package incident

import (
	"regexp"

	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// Message patterns, mirrored from the FIA race control message phrasing.
var (
	rePenalty5s           = regexp.MustCompile(`(?i)5\s*SECOND\s*(?:TIME\s*)?PENALTY`)
	rePenalty10s          = regexp.MustCompile(`(?i)10\s*SECOND\s*(?:TIME\s*)?PENALTY`)
	rePenaltyDriveThrough = regexp.MustCompile(`(?i)DRIVE\s*THROUGH`)
	rePenaltyGrid         = regexp.MustCompile(`(?i)GRID\s*(?:PLACE\s*)?PENALTY`)
	reCausedCollision     = regexp.MustCompile(`(?i)CAUSING\s+(?:A\s+)?COLLISION`)
	reFalseStart          = regexp.MustCompile(`(?i)FALSE\s*START`)
	reRedFlag             = regexp.MustCompile(`(?i)RED\s*FLAG`)
	reHitBarrier          = regexp.MustCompile(`(?i)(?:IN\s+(?:THE\s+)?WALL|BARRIER|CRASH(?:ED)?)`)
	reSpunOff             = regexp.MustCompile(`(?i)(?:SPUN|SPINNING|SPIN\b)`)
	reStoppedTrack        = regexp.MustCompile(`(?i)(?:STOPPED|BEACHED|GRAVEL|ESCAPE\s+ROAD)`)
	reRecovery            = regexp.MustCompile(`(?i)RECOVERY\s+VEHICLE`)
	reTurnLocation        = regexp.MustCompile(`(?i)(?:TURN\s+\d+|\bAT\b)`)
	rePenaltyWord         = regexp.MustCompile(`(?i)\bPENALTY\b`)

	// Noise patterns: messages that never indicate risky driving.
	reNoAction           = regexp.MustCompile(`(?i)NO\s+FURTHER\s+(?:ACTION|INVESTIGATION)`)
	reNotedOnly          = regexp.MustCompile(`(?i)\bNOTED\b`)
	reUnderInvestigation = regexp.MustCompile(`(?i)UNDER\s+INVESTIGATION|WILL\s+BE\s+INVESTIGATED`)
	reBlueFlag           = regexp.MustCompile(`(?i)BLUE\s+FLAG`)
	rePitInfringement    = regexp.MustCompile(`(?i)PIT\s+LANE\s+INFRINGEMENT`)
	reImpeding           = regexp.MustCompile(`(?i)\bIMPEDING\b`)

	// Attribution patterns. reCarRef is the only textual form that may name a
	// driver: an anchored car number with its abbreviation. reCarNumber only
	// establishes that *some* car is referenced; it never attributes.
	reCarRef      = regexp.MustCompile(`(?i)CAR\s+(\d+)\s*\(([A-Z]{3})\)`)
	reCarNumber   = regexp.MustCompile(`(?i)CAR\s+\d+`)
	reTrackLimits = regexp.MustCompile(`(?i)DELETED`)
	reTrackLimit2 = regexp.MustCompile(`(?i)TRACK\s+LIMITS`)
)

// Rule is one entry in the ordered classification table. Rules are evaluated
// top-to-bottom and the first match wins, so order encodes precedence. The
// predicate sees the raw text plus whether any driver reference (structured or
// anchored textual) is present.
type Rule struct {
	Name        string
	Kind        model.IncidentKind
	Match       func(text string, hasDriverRef bool) bool
	NeedsDriver bool
}

// classificationRules is the fixed precedence order: confirmed steward
// penalties first, then causation language, then crash language, then
// conditional kinds. Ambiguity between pattern classes is resolved here and
// only here.
func classificationRules() []Rule {
	return []Rule{
		{
			Name: "penalty_10s",
			Kind: model.KindPenalty10s,
			Match: func(text string, _ bool) bool {
				return rePenalty10s.MatchString(text)
			},
		},
		{
			Name: "penalty_5s",
			Kind: model.KindPenalty5s,
			Match: func(text string, _ bool) bool {
				return rePenalty5s.MatchString(text)
			},
		},
		{
			Name: "penalty_drive_through",
			Kind: model.KindPenaltyDriveThrough,
			Match: func(text string, _ bool) bool {
				return rePenaltyDriveThrough.MatchString(text)
			},
		},
		{
			Name: "penalty_grid",
			Kind: model.KindPenaltyGrid,
			Match: func(text string, _ bool) bool {
				return rePenaltyGrid.MatchString(text)
			},
		},
		{
			Name: "caused_collision",
			Kind: model.KindCausedCollision,
			Match: func(text string, _ bool) bool {
				if !reCausedCollision.MatchString(text) {
					return false
				}
				// Confirmed either by an attached penalty or by not being a
				// mere investigation notice.
				return rePenaltyWord.MatchString(text) || !reUnderInvestigation.MatchString(text)
			},
		},
		{
			// A red flag pinned on a specific car is the worst outcome.
			Name: "caused_red_flag",
			Kind: model.KindCausedRedFlag,
			Match: func(text string, hasDriverRef bool) bool {
				return reRedFlag.MatchString(text) && hasDriverRef
			},
			NeedsDriver: true,
		},
		{
			Name: "crash_barrier",
			Kind: model.KindCrashBarrier,
			Match: func(text string, _ bool) bool {
				return reHitBarrier.MatchString(text)
			},
		},
		{
			// Generic stoppage without a driver reference is noise, not an
			// unattributed incident.
			Name: "crash_stopped",
			Kind: model.KindCrashStopped,
			Match: func(text string, hasDriverRef bool) bool {
				return (reStoppedTrack.MatchString(text) || reSpunOff.MatchString(text)) && hasDriverRef
			},
			NeedsDriver: true,
		},
		{
			// A recovery vehicle dispatched to a named point implies someone
			// crashed near it.
			Name: "recovery_vehicle",
			Kind: model.KindCrashStopped,
			Match: func(text string, _ bool) bool {
				return reRecovery.MatchString(text) && reTurnLocation.MatchString(text)
			},
		},
		{
			Name: "false_start",
			Kind: model.KindFalseStart,
			Match: func(text string, _ bool) bool {
				return reFalseStart.MatchString(text) && rePenaltyWord.MatchString(text)
			},
		},
	}
}

// IsNoise reports whether the message is routine race control chatter that
// never indicates risky driving. Noise is rejected before any rule runs.
func IsNoise(text string) bool {
	if text == "" {
		return true
	}
	if reNoAction.MatchString(text) {
		return true
	}
	if reNotedOnly.MatchString(text) && !rePenaltyWord.MatchString(text) {
		return true
	}
	if reBlueFlag.MatchString(text) {
		return true
	}
	if rePitInfringement.MatchString(text) {
		return true
	}
	if reImpeding.MatchString(text) {
		return true
	}
	return false
}

// IsTrackLimitDeletion reports whether the message is a track-limits lap time
// deletion. Deletions are tallied per driver per session; only persistent
// offenders generate incidents.
func IsTrackLimitDeletion(text string) bool {
	return reTrackLimits.MatchString(text) && reTrackLimit2.MatchString(text)
}
