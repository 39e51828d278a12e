package permit

// Step is the explicit wizard state. Progression is linear with no skips:
// header → vehicles → personnel → summary.
type Step int

const (
	StepHeader Step = iota + 1
	StepVehicles
	StepPersonnel
	StepSummary
)

const stepCount = 4

func (s Step) String() string {
	switch s {
	case StepHeader:
		return "Document Info"
	case StepVehicles:
		return "Vehicles"
	case StepPersonnel:
		return "Personnel"
	case StepSummary:
		return "Summary"
	}
	return "Unknown"
}

// Index returns the 1-based position of the step for progress display.
func (s Step) Index() int { return int(s) }
