package scaffold

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*scaffolder)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithRunner sets the runner used for package manager commands
func WithRunner(runner Runner) Opt {
	return func(s *scaffolder) {
		if runner != nil {
			s.runner = runner
		}
	}
}
