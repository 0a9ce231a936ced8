package bindings

import (
	"time"

	"github.com/goliatone/go-bindings/pkg/events"
)

// Kind classifies the values a bound element can receive. Elements declare the
// kinds they accept via the KindDeclarer capability; when they declare none,
// only KindText is accepted.
type Kind int

const (
	KindInvalid Kind = iota
	KindText
	KindNumber
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// KindOf classifies an arbitrary value. Unknown types map to KindInvalid.
func KindOf(value any) Kind {
	switch value.(type) {
	case string:
		return KindText
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumber
	case time.Time:
		return KindTime
	default:
		return KindInvalid
	}
}

// Updater is the one capability an element must implement to participate in
// bindings. Elements without it are transparent containers: traversal still
// recurses through them but no value is ever delivered.
type Updater interface {
	UpdateValue(value any)
}

// KindDeclarer lets an element announce the value kinds it can render.
type KindDeclarer interface {
	AcceptedKinds() []Kind
}

// RecursionControl lets an element opt its subtree out of recursive
// propagation. Defaults to true when unimplemented.
type RecursionControl interface {
	BindsRecursively() bool
}

// FormatterProvider is the instance-level formatter source. It is consulted
// before reflected methods when resolving a bare formatter name against a
// scope.
type FormatterProvider interface {
	BindingFormatter(name string) (Formatter, bool)
}

// ModelUpdater is the view-to-model extension point. The engine never invokes
// it; hosts that support editable elements may call it when committing input.
type ModelUpdater interface {
	UpdateModel(value any) error
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	evaluator    Evaluator
	programCache ProgramCache
	formatters   *FormatterRegistry
	logger       BindingLogger
	store        RecordStore
	hooks        events.Hooks
	maxDepth     int
}

func applyOptions(opts []Option) engineConfig {
	cfg := engineConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures the key-path evaluator used during resolution.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *engineConfig) {
		cfg.evaluator = e
	}
}

// WithProgramCache registers a cache for compiled key-path programs. It is
// handed to the default evaluator when no explicit evaluator is configured.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *engineConfig) {
		cfg.programCache = cache
	}
}

// WithFormatterRegistry configures the registry consulted for qualified and
// type-level formatter names. The registry is cloned.
func WithFormatterRegistry(registry *FormatterRegistry) Option {
	return func(cfg *engineConfig) {
		if registry == nil {
			return
		}
		cfg.formatters = registry.Clone()
	}
}

// WithFormatter registers a single qualified formatter on the engine registry.
func WithFormatter(name string, formatter any) Option {
	return func(cfg *engineConfig) {
		if cfg.formatters == nil {
			cfg.formatters = NewFormatterRegistry()
		}
		_ = cfg.formatters.Register(name, formatter)
	}
}

// WithBindingLogger attaches a logger receiving resolution and apply events.
func WithBindingLogger(logger BindingLogger) Option {
	return func(cfg *engineConfig) {
		if logger == nil {
			cfg.logger = noopBindingLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithRecordStore replaces the backing store of the binding record cache.
func WithRecordStore(store RecordStore) Option {
	return func(cfg *engineConfig) {
		cfg.store = store
	}
}

// WithHooks attaches event hooks notified after bind and refresh traversals.
// Hooks are cloned and nil entries dropped.
func WithHooks(hooks events.Hooks) Option {
	normalized := cloneHooks(hooks)
	return func(cfg *engineConfig) {
		cfg.hooks = normalized
	}
}

// WithMaxDepth bounds ancestor walks during chain construction. Exceeding it
// is treated as an unreachable boundary, which is an invariant violation.
func WithMaxDepth(depth int) Option {
	return func(cfg *engineConfig) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

func cloneHooks(hooks events.Hooks) events.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]events.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return events.Hooks(normalized)
}
