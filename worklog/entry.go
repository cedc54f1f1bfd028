package worklog

import "time"

// Entry is one logged overtime session owned by a user.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ProjectLink string    `json:"projectLink"`
	HoursWorked float64   `json:"hoursWorked"`
	Supervisor  string    `json:"supervisor"`
	Date        Date      `json:"date"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Draft holds the caller-supplied fields of a new entry.
type Draft struct {
	ProjectLink string  `json:"projectLink" validate:"omitempty,url,max=2048"`
	HoursWorked float64 `json:"hoursWorked" validate:"gt=0"`
	Supervisor  string  `json:"supervisor" validate:"max=200"`
	Date        Date    `json:"date"`
	Notes       string  `json:"notes" validate:"max=2000"`
}

// Patch replaces the non-nil fields of an existing entry.
type Patch struct {
	ProjectLink *string  `json:"projectLink,omitempty"`
	HoursWorked *float64 `json:"hoursWorked,omitempty"`
	Supervisor  *string  `json:"supervisor,omitempty"`
	Date        *Date    `json:"date,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// RedactedEntry is the public view of an entry; it carries no identifiers.
type RedactedEntry struct {
	ProjectLink string  `json:"projectLink"`
	HoursWorked float64 `json:"hoursWorked"`
	Supervisor  string  `json:"supervisor"`
	Date        Date    `json:"date"`
	Notes       string  `json:"notes"`
}

func (e Entry) Draft() Draft {
	return Draft{
		ProjectLink: e.ProjectLink,
		HoursWorked: e.HoursWorked,
		Supervisor:  e.Supervisor,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

func (e Entry) Redacted() RedactedEntry {
	return RedactedEntry{
		ProjectLink: e.ProjectLink,
		HoursWorked: e.HoursWorked,
		Supervisor:  e.Supervisor,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

// Apply returns a copy of d with the non-nil patch fields applied.
func (p Patch) Apply(d Draft) Draft {
	if p.ProjectLink != nil {
		d.ProjectLink = *p.ProjectLink
	}
	if p.HoursWorked != nil {
		d.HoursWorked = *p.HoursWorked
	}
	if p.Supervisor != nil {
		d.Supervisor = *p.Supervisor
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return d
}

func (p Patch) IsEmpty() bool {
	return p.ProjectLink == nil && p.HoursWorked == nil && p.Supervisor == nil && p.Date == nil && p.Notes == nil
}
