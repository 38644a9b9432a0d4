package nstance

import (
	"github.com/rs/zerolog"
)

// Option configures an InstantiationService
type Option func(*InstantiationService)

// WithLogger sends a trace of each resolution to log at debug level.
// Advisory problems, such as a mismatch between the number of static
// arguments and plain parameters, are logged at warn level.  The default
// is zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(s *InstantiationService) {
		s.log = log
	}
}

func (r *resolution) debugf(format string, stuff ...any) {
	e := r.svc.log.Debug()
	if !e.Enabled() {
		return
	}
	e.Int("depth", len(r.stack)).Msgf(format, stuff...)
}

func (r *resolution) warnArity(ctor *Constructor, got int) {
	r.svc.log.Warn().
		Stringer("constructor", ctor).
		Int("expected", ctor.leading).
		Int("got", got).
		Msg("static arguments do not match plain parameters")
}
