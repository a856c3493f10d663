package inquiry

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Option lists offered by the contact form.
var (
	Goals       = []string{"Muscle Gain", "Fat Loss", "General Fitness", "Strength", "Endurance"}
	Memberships = []string{"Trial", "Monthly", "Quarterly", "Yearly"}
	BestTimes   = []string{"Morning", "Afternoon", "Evening"}
	Branches    = []string{
		"Adarsh Nagar", "Pitampura", "Patel Nagar", "Rajouri Garden", "Janak Puri",
		"Paschim Vihar", "Model Town", "Rohini", "Dwarka", "Gurugram", "Noida",
	}
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Inquiry is one contact-form submission.
type Inquiry struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Goal            string    `json:"goal"`
	PreferredBranch string    `json:"preferredBranch"`
	Membership      string    `json:"membership"`
	BestTime        string    `json:"bestTime"`
	Message         string    `json:"message"`
	Consent         bool      `json:"consent"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Default returns the values the form starts with.
func Default() Inquiry {
	return Inquiry{
		Goal:       "Muscle Gain",
		Membership: "Trial",
		BestTime:   "Evening",
		Consent:    true,
	}
}

// ValidationErrors maps a field name to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid inquiry: " + strings.Join(parts, "; ")
}

// Validate checks every field and returns all problems at once, or nil.
func (q Inquiry) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if len([]rune(strings.TrimSpace(q.FullName))) < 2 {
		errs["fullName"] = "Please enter your full name."
	}

	digits := 0
	for _, r := range normalizePhone(q.Phone) {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		errs["phone"] = "Please enter a valid phone number (min 10 digits)."
	}

	if !emailPattern.MatchString(strings.TrimSpace(q.Email)) {
		errs["email"] = "Please enter a valid email address."
	}

	if msg := len([]rune(strings.TrimSpace(q.Message))); msg > 0 && msg < 10 {
		errs["message"] = "If you add a message, please write at least 10 characters."
	}

	if !oneOf(q.Goal, Goals) {
		errs["goal"] = "Please choose a goal: " + strings.Join(Goals, ", ") + "."
	}
	if !oneOf(q.Membership, Memberships) {
		errs["membership"] = "Please choose a membership: " + strings.Join(Memberships, ", ") + "."
	}
	if !oneOf(q.BestTime, BestTimes) {
		errs["bestTime"] = "Please choose a time: " + strings.Join(BestTimes, ", ") + "."
	}
	if q.PreferredBranch != "" && !oneOf(q.PreferredBranch, Branches) {
		errs["preferredBranch"] = "Please choose one of our branches."
	}

	if !q.Consent {
		errs["consent"] = "Consent is required to submit this form."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// normalizePhone keeps digits and '+'.
func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
