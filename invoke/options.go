package invoke

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultBaseFee         = 100
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 15
	DefaultPollTimeout     = 60 * time.Second
)

// Options tunes a single invocation. The zero value is usable: no
// auto-restoration, default fees and polling bounds, logging disabled.
type Options struct {
	// SequenceNumber is the source account's current sequence number.
	// Envelopes built by the invocation use successive values above it.
	SequenceNumber uint64

	// BaseFee is added to the simulated minimum resource fee.
	BaseFee uint64

	// AutoRestore opts into automatic restoration of archived ledger
	// state: the invocation runs one restoration round-trip and
	// re-simulates. Off by default; without it an archived footprint
	// fails immediately, naming the keys to restore.
	AutoRestore bool

	// PollInterval separates successive finality polls.
	PollInterval time.Duration

	// MaxPollAttempts bounds the number of finality polls per submission.
	MaxPollAttempts int

	// PollTimeout bounds the total time spent polling one submission.
	PollTimeout time.Duration

	// Logger receives state-transition events. The zero Logger discards
	// everything; the library stays silent unless one is injected.
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.BaseFee == 0 {
		o.BaseFee = DefaultBaseFee
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.MaxPollAttempts <= 0 {
		o.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if o.PollTimeout <= 0 {
		o.PollTimeout = DefaultPollTimeout
	}
	return o
}
