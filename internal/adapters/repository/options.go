package repository

// Option applies a configuration option to a store.
type Option func(*settings)

type settings struct {
	slot string
}

func newSettings(opts []Option) settings {
	s := settings{slot: DefaultSlot}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithSlot sets the slot name.
func WithSlot(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.slot = name
		}
	}
}
