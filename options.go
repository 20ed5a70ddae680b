package rgmpcore

// coreConfig holds the resolved configuration for a Core, built up by
// Option values: an unexported config struct, an exported functional
// option interface with a private apply method, and a private resolver.
type coreConfig struct {
	logger     *Logger
	addrSpace  AddressSpace
	crashdump  CrashDumpFunc
	bootSteps  []BootStep
	capability CapabilityChecker
}

// Option configures a Core returned by NewCore.
type Option interface {
	applyCore(*coreConfig)
}

type optionFunc func(*coreConfig)

func (f optionFunc) applyCore(c *coreConfig) { f(c) }

// WithLogger sets the structured logger used for precondition-violation
// warnings (see Core.Block, Core.Unblock, Core.Reprioritize,
// Core.ScheduleSigaction). Passing nil is equivalent to not calling this
// option; DiscardLogger is used by default.
func WithLogger(log *Logger) Option {
	return optionFunc(func(c *coreConfig) {
		if log != nil {
			c.logger = log
		}
	})
}

// WithAddressSpace installs the address-environment handoff invoked on
// every inter-task switch. The default is a no-op, appropriate for
// ports without an MMU-backed address space per task.
func WithAddressSpace(a AddressSpace) Option {
	return optionFunc(func(c *coreConfig) {
		if a != nil {
			c.addrSpace = a
		}
	})
}

// WithCrashDump installs the board crashdump hook invoked by Assert
// before it panics or exits the current task.
func WithCrashDump(f CrashDumpFunc) Option {
	return optionFunc(func(c *coreConfig) {
		c.crashdump = f
	})
}

// WithBootSteps overrides the ordered boot sequence run by Initialize.
// See BootStep and DefaultBootSteps.
func WithBootSteps(steps ...BootStep) Option {
	return optionFunc(func(c *coreConfig) {
		c.bootSteps = steps
	})
}

// WithCapabilityChecker overrides the hardware-capability gate run before
// boot steps execute. See CheckCapabilities.
func WithCapabilityChecker(check CapabilityChecker) Option {
	return optionFunc(func(c *coreConfig) {
		if check != nil {
			c.capability = check
		}
	})
}

func resolveCoreOptions(opts []Option) *coreConfig {
	cfg := &coreConfig{
		logger:     DiscardLogger(),
		addrSpace:  noopAddressSpace{},
		bootSteps:  DefaultBootSteps(),
		capability: CheckCapabilities,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyCore(cfg)
	}
	return cfg
}
