package models

type ReportType string

const (
	ReportSpam             ReportType = "spam"
	ReportHateSpeech       ReportType = "hate-speech"
	ReportFalseInformation ReportType = "false-information"
	ReportSensitive        ReportType = "sensitive"
	ReportDuplicate        ReportType = "duplicate"
)

var reportLabels = map[ReportType]string{
	ReportSpam:             "It's spam",
	ReportHateSpeech:       "Hate Speech and Symbol used",
	ReportFalseInformation: "False Information",
	ReportSensitive:        "Sensitive Content",
	ReportDuplicate:        "Copyrited Content",
}

func (t ReportType) Valid() bool {
	_, ok := reportLabels[t]
	return ok
}

// Label is the human readable name shown to clients.
func (t ReportType) Label() string {
	if l, ok := reportLabels[t]; ok {
		return l
	}
	return string(t)
}

type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusApproved ReportStatus = "approved"
	StatusRejected ReportStatus = "rejected"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
