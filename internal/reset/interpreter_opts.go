package reset

import "time"

type InterpreterOpt func(*Interpreter)

// WithTriggers sets the scripting engine that receives trigger hand-offs.
func WithTriggers(t Triggers) InterpreterOpt {
	return func(in *Interpreter) {
		in.triggers = t
	}
}

// WithRoller sets the randomness source.
func WithRoller(r Roller) InterpreterOpt {
	return func(in *Interpreter) {
		in.roller = r
	}
}

// WithNotifier sets who is told about completed resets.
func WithNotifier(n Notifier) InterpreterOpt {
	return func(in *Interpreter) {
		in.notifier = n
	}
}

// WithTuning sets the random treasure tuning.
func WithTuning(t Tuning) InterpreterOpt {
	return func(in *Interpreter) {
		in.tuning = t
	}
}

// WithClock sets the clock used to stamp reset start times.
func WithClock(now func() time.Time) InterpreterOpt {
	return func(in *Interpreter) {
		in.now = now
	}
}
