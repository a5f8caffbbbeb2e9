package domain

// Stats summarizes the library and the vocabulary
type Stats struct {
	Books    int            `json:"books"`
	Words    int            `json:"words"`
	ByStatus map[Status]int `json:"by_status"`
}

// Visible returns the number of words shown in the vocabulary list
func (s Stats) Visible() int {
	return s.Words - s.ByStatus[StatusFamiliar]
}
