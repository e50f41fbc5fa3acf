package domain

import "strings"

// SampleStatus is the processing stage a sample has reached.
type SampleStatus string

const (
	StatusMetadataRegistered  SampleStatus = "METADATA_REGISTERED"
	StatusSampleReceived      SampleStatus = "SAMPLE_RECEIVED"
	StatusSampleQCFail        SampleStatus = "SAMPLE_QC_FAIL"
	StatusSampleQCPass        SampleStatus = "SAMPLE_QC_PASS"
	StatusLibraryPrepFinished SampleStatus = "LIBRARY_PREP_FINISHED"
	StatusDataAvailable       SampleStatus = "DATA_AVAILABLE"
)

var allSampleStatuses = []SampleStatus{
	StatusMetadataRegistered,
	StatusSampleReceived,
	StatusSampleQCFail,
	StatusSampleQCPass,
	StatusLibraryPrepFinished,
	StatusDataAvailable,
}

// AllSampleStatuses lists every status in pipeline order.
func AllSampleStatuses() []SampleStatus {
	out := make([]SampleStatus, len(allSampleStatuses))
	copy(out, allSampleStatuses)
	return out
}

// ParseSampleStatus accepts a status name in any letter case.
func ParseSampleStatus(s string) (SampleStatus, error) {
	want := SampleStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range allSampleStatuses {
		if st == want {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

func (s SampleStatus) Valid() bool {
	_, err := ParseSampleStatus(string(s))
	return err == nil
}

// Caption is the human readable name of the status.
func (s SampleStatus) Caption() string {
	switch s {
	case StatusMetadataRegistered:
		return "Metadata Registered"
	case StatusSampleReceived:
		return "Sample Received"
	case StatusSampleQCFail:
		return "QC Failed"
	case StatusSampleQCPass:
		return "QC Passed"
	case StatusLibraryPrepFinished:
		return "Library Prep Finished"
	case StatusDataAvailable:
		return "Data Available"
	default:
		return string(s)
	}
}
