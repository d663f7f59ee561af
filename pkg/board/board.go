// Package board implements the update cycle that turns a part graph into an
// emitted option document.
//
// A Board owns a set of top-level components and a transport. Each update
// cycle validates the components, collects their constituent parts, assigns
// serials (per encoder group for parts, globally for data providers),
// re-validates, renders the option document and hands it to the transport.
// Data provider content travels in separate initData messages; the option
// document references providers by serial only.
//
// Serial assignment is transactional: proposals are staged for the whole
// graph first and committed only when every assignment is legal, so a
// failing update never leaves the graph partially numbered.
package board

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/syampillai/sochart/pkg/cache"
	"github.com/syampillai/sochart/pkg/chart"
	"github.com/syampillai/sochart/pkg/data"
	"github.com/syampillai/sochart/pkg/errors"
	"github.com/syampillai/sochart/pkg/observability"
	"github.com/syampillai/sochart/pkg/part"
)

// Board drives update cycles over a component set.
//
// A Board is not safe for concurrent use; serialize updates externally.
type Board struct {
	name        string
	reg         *part.Registry
	transport   Transport
	logger      *log.Logger
	cache       cache.Cache
	keyer       cache.Keyer
	customizers []Customizer

	components []chart.Component
	msgSerial  int
	lastKey    string
	sent       map[int64]int // provider identity -> transmitted serial
}

// Option configures a Board.
type Option func(*Board)

// WithName sets the board name used in cache keys and logs.
func WithName(name string) Option {
	return func(b *Board) { b.name = name }
}

// WithLogger sets the board's logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCache enables option-document caching. A nil keyer selects the
// default key scheme.
func WithCache(c cache.Cache, keyer cache.Keyer) Option {
	return func(b *Board) {
		if c != nil {
			b.cache = c
		}
		if keyer != nil {
			b.keyer = keyer
		}
	}
}

// WithCustomizer appends a customization applied to every rendered option
// document, in registration order.
func WithCustomizer(fn Customizer) Option {
	return func(b *Board) {
		if fn != nil {
			b.customizers = append(b.customizers, fn)
		}
	}
}

// New creates a board over the given registry and transport.
func New(r *part.Registry, t Transport, opts ...Option) *Board {
	b := &Board{
		name:      "main",
		reg:       r,
		transport: t,
		logger:    log.Default(),
		cache:     cache.NewNullCache(),
		keyer:     cache.NewDefaultKeyer(),
		sent:      map[int64]int{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the board name.
func (b *Board) Name() string { return b.name }

// Add appends components to the board. Nil components and components
// already present are ignored.
func (b *Board) Add(comps ...chart.Component) {
	for _, c := range comps {
		if c == nil || b.contains(c) {
			continue
		}
		b.components = append(b.components, c)
	}
}

// Remove detaches a component from the board.
func (b *Board) Remove(c chart.Component) {
	for i, existing := range b.components {
		if existing.PartID() == c.PartID() {
			b.components = append(b.components[:i], b.components[i+1:]...)
			return
		}
	}
}

func (b *Board) contains(c chart.Component) bool {
	for _, existing := range b.components {
		if existing.PartID() == c.PartID() {
			return true
		}
	}
	return false
}

// effectiveComponents expands composites and deduplicates by identity.
func (b *Board) effectiveComponents() []chart.Component {
	var comps []chart.Component
	seen := map[int64]bool{}
	add := func(c chart.Component) {
		if seen[c.PartID()] {
			return
		}
		seen[c.PartID()] = true
		comps = append(comps, c)
	}
	for _, c := range b.components {
		add(c)
		if comp, ok := c.(chart.Composite); ok {
			for _, sub := range comp.Components() {
				add(sub)
			}
		}
	}
	return comps
}

// Update runs a full update cycle and then releases every serial, leaving
// the graph ready for the next full emission.
func (b *Board) Update(ctx context.Context) error {
	return b.update(ctx, false)
}

// UpdateAndKeepData runs a full update cycle but keeps data provider
// serials assigned, so the providers stay addressable for UpdateData.
func (b *Board) UpdateAndKeepData(ctx context.Context) error {
	return b.update(ctx, true)
}

// UpdateData re-transmits the content of providers that were kept alive by
// UpdateAndKeepData. Providers that were never transmitted are rejected.
func (b *Board) UpdateData(ctx context.Context, providers ...data.Provider) error {
	for _, p := range providers {
		serial, ok := b.sent[p.PartID()]
		if !ok || p.Serial() == part.SerialUnassigned {
			return errors.New(errors.ErrCodeDataNotSent,
				"%s has not been transmitted", p.Label())
		}
		msg := Message{Command: CommandUpdateData, Serial: serial, Payload: dataPayload(p)}
		if err := b.transport.Send(ctx, msg); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "sending data update")
		}
		observability.Update().OnMessage(ctx, CommandUpdateData, len(msg.Payload))
	}
	return nil
}

func (b *Board) update(ctx context.Context, keepData bool) (err error) {
	start := time.Now()
	hooks := observability.Update()

	comps := b.effectiveComponents()
	hooks.OnUpdateStart(ctx, len(comps))

	var parts []chart.Encodable
	var providers []data.Provider
	defer func() {
		hooks.OnUpdateComplete(ctx, len(parts), len(providers), time.Since(start), err)
	}()

	// Structural validation, before any serials exist.
	for _, c := range comps {
		if err = c.Validate(); err != nil {
			return err
		}
	}

	parts = collectParts(comps)
	providers = collectProviders(comps)

	rollback := func() {
		for _, pt := range parts {
			pt.ResetSerial()
		}
		for _, p := range providers {
			if _, already := b.sent[p.PartID()]; !already {
				p.ResetSerial()
			}
		}
	}

	if err = b.assignSerials(parts, providers); err != nil {
		rollback()
		return err
	}

	// Numbered validation: rules that depend on assigned serials.
	for _, c := range comps {
		if err = c.ValidateNumbered(); err != nil {
			rollback()
			return err
		}
	}

	option := buildOption(parts, providers)
	for _, fn := range b.customizers {
		if option, err = fn(option); err != nil {
			rollback()
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "customizing option")
		}
	}

	if err = b.transmitData(ctx, providers); err != nil {
		rollback()
		return err
	}
	if err = b.emit(ctx, option); err != nil {
		rollback()
		return err
	}

	b.logger.Debug("update cycle complete",
		"board", b.name,
		"components", len(comps),
		"parts", len(parts),
		"providers", len(providers),
		"duration", time.Since(start))

	// Teardown: parts always release their serials; data serials survive
	// only when the caller keeps them addressable.
	for _, pt := range parts {
		pt.ResetSerial()
	}
	if !keepData {
		for _, p := range providers {
			p.ResetSerial()
		}
		b.sent = map[int64]int{}
	}
	return nil
}

// collectParts gathers the components and their contributed parts,
// deduplicated by identity, in collection order.
func collectParts(comps []chart.Component) []chart.Encodable {
	var parts []chart.Encodable
	seen := map[int64]bool{}
	add := func(e chart.Encodable) {
		if e == nil || seen[e.PartID()] {
			return
		}
		seen[e.PartID()] = true
		parts = append(parts, e)
	}
	for _, c := range comps {
		add(c)
	}
	for _, c := range comps {
		c.CollectParts(add)
	}
	return parts
}

// collectProviders gathers declared data providers, deduplicated by
// identity: a provider shared between components is transmitted once.
func collectProviders(comps []chart.Component) []data.Provider {
	var providers []data.Provider
	seen := map[int64]bool{}
	for _, c := range comps {
		for _, p := range c.DeclaredData() {
			if p == nil || seen[p.PartID()] {
				continue
			}
			seen[p.PartID()] = true
			providers = append(providers, p)
		}
	}
	return providers
}

// assignSerials stages serial proposals for the whole graph and commits
// them only when every proposal is legal.
func (b *Board) assignSerials(parts []chart.Encodable, providers []data.Provider) error {
	// Parts number 0-based within their encoder group, in collection order.
	groupNext := map[part.Group]int{}
	partSerial := make([]int, len(parts))
	for i, pt := range parts {
		g := pt.Group()
		partSerial[i] = groupNext[g]
		groupNext[g]++
		if s := pt.Serial(); s != part.SerialUnassigned && s != partSerial[i] {
			return errors.Contract(pt.Label(), "stale serial %d survived teardown", s)
		}
	}

	// Data serials are global, continuing past the highest kept serial.
	next := 1
	for _, p := range providers {
		if s := p.Serial(); s >= next {
			next = s + 1
		}
	}
	dataSerial := make([]int, len(providers))
	for i, p := range providers {
		dataSerial[i] = p.Serial()
		if dataSerial[i] == part.SerialUnassigned {
			dataSerial[i] = next
			next++
		}
	}

	for i, pt := range parts {
		if pt.Serial() == partSerial[i] {
			continue
		}
		if err := pt.AssignSerial(partSerial[i]); err != nil {
			return err
		}
	}
	for i, p := range providers {
		if p.Serial() == dataSerial[i] {
			continue
		}
		if err := p.AssignSerial(dataSerial[i]); err != nil {
			return err
		}
	}
	return nil
}

// dataPayload wraps a provider's content in the data message envelope.
func dataPayload(p data.Provider) []byte {
	dst := append([]byte(nil), `{"d":`...)
	dst = p.AppendJSON(dst)
	return append(dst, '}')
}

// transmitData sends initData messages for providers not yet known to the
// client. Internal providers never leave the server.
func (b *Board) transmitData(ctx context.Context, providers []data.Provider) error {
	for _, p := range providers {
		if p.Internal() {
			continue
		}
		if _, already := b.sent[p.PartID()]; already {
			continue
		}
		msg := Message{Command: CommandInitData, Serial: p.Serial(), Payload: dataPayload(p)}
		if err := b.transport.Send(ctx, msg); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "sending data for %s", p.Label())
		}
		observability.Update().OnMessage(ctx, CommandInitData, len(msg.Payload))
		b.sent[p.PartID()] = p.Serial()
	}
	return nil
}

// emit sends the option document unless it is identical to the previous
// emission, and records it in the cache for the serving layer.
func (b *Board) emit(ctx context.Context, option []byte) error {
	key := b.keyer.OptionKey(b.name, option)
	if key == b.lastKey {
		observability.Cache().OnCacheHit(ctx, "option")
		b.logger.Debug("option unchanged, skipping emission", "board", b.name)
		return nil
	}
	observability.Cache().OnCacheMiss(ctx, "option")

	msg := Message{Command: CommandInit, Serial: b.msgSerial, Payload: option}
	if err := b.transport.Send(ctx, msg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sending option")
	}
	observability.Update().OnMessage(ctx, CommandInit, len(option))
	b.msgSerial++

	if err := b.cache.Set(ctx, key, option, 0); err != nil {
		b.logger.Warn("caching option failed", "board", b.name, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "option", len(option))
	}
	b.lastKey = key
	return nil
}
