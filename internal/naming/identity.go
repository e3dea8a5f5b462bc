package naming

import "time"

// CycleTimeLayout formats the processing cycle time as yyyymmdd.HHMMSS.
const CycleTimeLayout = "20060102.150405"

// RunIdentity names one invocation. It is built from the wall-clock time
// captured at process start, so inputs produced while the run is in
// progress cannot shift its name.
type RunIdentity struct {
	ParameterName string
	DateOfData    string
	CycleTime     string // yyyymmdd.HHMMSS, local time.
	Basename      string // <parameter>_<date>___vectorgen_<cycle>
}

// NewRunIdentity builds the identity for parameterName/dateOfData at start.
func NewRunIdentity(parameterName, dateOfData string, start time.Time) RunIdentity {
	cycle := start.Local().Format(CycleTimeLayout)
	return RunIdentity{
		ParameterName: parameterName,
		DateOfData:    dateOfData,
		CycleTime:     cycle,
		Basename:      parameterName + "_" + dateOfData + "___vectorgen_" + cycle,
	}
}
