package screen

import (
	"github.com/fhsmendes/skycast/models"
)

const EmptyCityMessage = "Please enter a city name"

// Search is the landing form: one city field and an inline error.
type Search struct {
	City  string
	Error string
}

// Submit validates input and hands the trimmed city to navigate. Blank input
// only sets Error. It reports whether navigation happened.
func (s *Search) Submit(input string, navigate func(models.Query)) bool {
	s.City = input

	q, err := models.NewQuery(input)
	if err != nil {
		s.Error = EmptyCityMessage
		return false
	}

	s.Error = ""
	navigate(q)
	return true
}
