// Package mempool implements the relay and mempool admission policy.
package mempool

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	DefaultMinRelayFee      uint64 = 1000 // sat/kvB
	DefaultMaxTxSize        uint64 = 100_000
	DefaultDustLimit        uint64 = 546
	DefaultMaxAncestors     uint32 = 25
	DefaultMaxDescendants   uint32 = 25
	DefaultMaxAncestorSize  uint64 = 101_000
	DefaultAllowReplacement        = true
)

// Settings is a plain copy of every policy knob.
type Settings struct {
	MinRelayFee       uint64
	MaxTxSize         uint64
	DustLimit         uint64
	MaxAncestors      uint32
	MaxDescendants    uint32
	MaxAncestorSize   uint64
	AllowReplacement  bool
	AcceptNonStandard bool
}

// DefaultSettings returns the default policy knobs.
func DefaultSettings() Settings {
	return Settings{
		MinRelayFee:      DefaultMinRelayFee,
		MaxTxSize:        DefaultMaxTxSize,
		DustLimit:        DefaultDustLimit,
		MaxAncestors:     DefaultMaxAncestors,
		MaxDescendants:   DefaultMaxDescendants,
		MaxAncestorSize:  DefaultMaxAncestorSize,
		AllowReplacement: DefaultAllowReplacement,
	}
}

// Policy holds runtime tunable admission knobs. Each knob is synchronized on its own,
// so a check running concurrently with updates may observe a mix of old and new values.
type Policy struct {
	minRelayFee       *atomic.Uint64
	maxTxSize         *atomic.Uint64
	dustLimit         *atomic.Uint64
	maxAncestors      *atomic.Uint32
	maxDescendants    *atomic.Uint32
	maxAncestorSize   *atomic.Uint64
	allowReplacement  *atomic.Bool
	acceptNonStandard *atomic.Bool

	logger *zap.Logger
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the logger used for rejection diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Policy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSettings overrides the default knobs.
func WithSettings(s Settings) Option {
	return func(p *Policy) {
		p.Apply(s)
	}
}

// NewPolicy returns a policy initialised with default knobs.
func NewPolicy(opts ...Option) *Policy {
	d := DefaultSettings()
	p := &Policy{
		minRelayFee:       atomic.NewUint64(d.MinRelayFee),
		maxTxSize:         atomic.NewUint64(d.MaxTxSize),
		dustLimit:         atomic.NewUint64(d.DustLimit),
		maxAncestors:      atomic.NewUint32(d.MaxAncestors),
		maxDescendants:    atomic.NewUint32(d.MaxDescendants),
		maxAncestorSize:   atomic.NewUint64(d.MaxAncestorSize),
		allowReplacement:  atomic.NewBool(d.AllowReplacement),
		acceptNonStandard: atomic.NewBool(d.AcceptNonStandard),
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply stores every knob in s. Knobs are written one by one.
func (p *Policy) Apply(s Settings) {
	p.minRelayFee.Store(s.MinRelayFee)
	p.maxTxSize.Store(s.MaxTxSize)
	p.dustLimit.Store(s.DustLimit)
	p.maxAncestors.Store(s.MaxAncestors)
	p.maxDescendants.Store(s.MaxDescendants)
	p.maxAncestorSize.Store(s.MaxAncestorSize)
	p.allowReplacement.Store(s.AllowReplacement)
	p.acceptNonStandard.Store(s.AcceptNonStandard)
}

// Settings reads every knob. The result is not an atomic snapshot.
func (p *Policy) Settings() Settings {
	return Settings{
		MinRelayFee:       p.MinRelayFee(),
		MaxTxSize:         p.MaxTxSize(),
		DustLimit:         p.DustLimit(),
		MaxAncestors:      p.MaxAncestors(),
		MaxDescendants:    p.MaxDescendants(),
		MaxAncestorSize:   p.MaxAncestorSize(),
		AllowReplacement:  p.AllowReplacement(),
		AcceptNonStandard: p.AcceptNonStandard(),
	}
}

// MinRelayFee returns the relay fee rate in satoshis per 1000 virtual bytes.
func (p *Policy) MinRelayFee() uint64 { return p.minRelayFee.Load() }

// SetMinRelayFee sets the relay fee rate in satoshis per 1000 virtual bytes.
func (p *Policy) SetMinRelayFee(fee uint64) { p.minRelayFee.Store(fee) }

// MaxTxSize returns the largest accepted virtual size.
func (p *Policy) MaxTxSize() uint64 { return p.maxTxSize.Load() }

// SetMaxTxSize sets the largest accepted virtual size.
func (p *Policy) SetMaxTxSize(size uint64) { p.maxTxSize.Store(size) }

// DustLimit returns the smallest accepted output value in satoshis.
func (p *Policy) DustLimit() uint64 { return p.dustLimit.Load() }

// SetDustLimit sets the smallest accepted output value in satoshis.
func (p *Policy) SetDustLimit(limit uint64) { p.dustLimit.Store(limit) }

// MaxAncestors returns the unconfirmed ancestor count limit.
func (p *Policy) MaxAncestors() uint32 { return p.maxAncestors.Load() }

// SetMaxAncestors sets the unconfirmed ancestor count limit.
func (p *Policy) SetMaxAncestors(n uint32) { p.maxAncestors.Store(n) }

// MaxDescendants returns the unconfirmed descendant count limit.
func (p *Policy) MaxDescendants() uint32 { return p.maxDescendants.Load() }

// SetMaxDescendants sets the unconfirmed descendant count limit.
func (p *Policy) SetMaxDescendants(n uint32) { p.maxDescendants.Store(n) }

// MaxAncestorSize returns the limit on total ancestor virtual size.
func (p *Policy) MaxAncestorSize() uint64 { return p.maxAncestorSize.Load() }

// SetMaxAncestorSize sets the limit on total ancestor virtual size.
func (p *Policy) SetMaxAncestorSize(n uint64) { p.maxAncestorSize.Store(n) }

// AllowReplacement reports whether BIP-125 replacements are accepted.
func (p *Policy) AllowReplacement() bool { return p.allowReplacement.Load() }

// SetAllowReplacement enables or disables BIP-125 replacements.
func (p *Policy) SetAllowReplacement(v bool) { p.allowReplacement.Store(v) }

// AcceptNonStandard reports whether standardness checks are skipped.
func (p *Policy) AcceptNonStandard() bool { return p.acceptNonStandard.Load() }

// SetAcceptNonStandard sets whether standardness checks are skipped.
func (p *Policy) SetAcceptNonStandard(v bool) { p.acceptNonStandard.Store(v) }
