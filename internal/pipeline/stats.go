package pipeline

import "go.uber.org/multierr"

// State is a step of the run state machine.
type State int

const (
	StateStart State = iota
	StateConfigLoaded
	StateDirectoriesVerified
	StateInputsCollected
	StateNamesResolved
	StateConverted
	StateReported
)

var stateNames = [...]string{
	StateStart:               "START",
	StateConfigLoaded:        "ConfigLoaded",
	StateDirectoriesVerified: "DirectoriesVerified",
	StateInputsCollected:     "InputsCollected",
	StateNamesResolved:       "NamesResolved",
	StateConverted:           "Converted",
	StateReported:            "Reported",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Report summarizes one run. Warnings holds the non-fatal errors
// accumulated along the way.
type Report struct {
	State       State
	States      []State
	Basename    string
	LogFile     string
	Inputs      []string
	OutputPath  string
	OutputBytes int64
	AuditPath   string
	Warnings    error
}

func (r *Report) enter(s State) {
	r.State = s
	r.States = append(r.States, s)
}

func (r *Report) warn(err error) {
	r.Warnings = multierr.Append(r.Warnings, err)
}

// Reached reports whether the run passed through s.
func (r *Report) Reached(s State) bool {
	for _, v := range r.States {
		if v == s {
			return true
		}
	}
	return false
}

// StateNames returns the visited states in order.
func (r *Report) StateNames() []string {
	names := make([]string, len(r.States))
	for i, s := range r.States {
		names[i] = s.String()
	}
	return names
}

// ErrorCount is the number of accumulated non-fatal errors; the CLI exits
// with it after a successful run.
func (r *Report) ErrorCount() int {
	return len(multierr.Errors(r.Warnings))
}
