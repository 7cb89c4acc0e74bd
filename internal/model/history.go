package model

// HistoryDateLayout is the timestamp format stored with each history entry.
const HistoryDateLayout = "2006-01-02 15:04:05"

// HistoryEntry is a retained generated password.
type HistoryEntry struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Strength string `json:"strength"`
	Date     string `json:"date"`
}
