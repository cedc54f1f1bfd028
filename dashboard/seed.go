package dashboard

import (
	"fmt"
	"time"

	"overtrack/worklog"
)

type SeedResult struct {
	Users   int
	Entries int
}

type seedEntry struct {
	userID      string
	projectLink string
	hours       float64
	supervisor  string
	date        string
	notes       string
}

var seedCreatedAt = time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)

var seedUsers = []worklog.User{
	{ID: "demo_user_1", Name: "John Doe", Email: "john.doe@example.com", Password: "demo123", CreatedAt: seedCreatedAt},
	{ID: "demo_user_2", Name: "Jane Smith", Email: "jane.smith@example.com", Password: "demo123", CreatedAt: seedCreatedAt},
}

var seedEntries = []seedEntry{
	{"demo_user_1", "https://github.com/company/website-redesign", 8.5, "Sarah Johnson", "2025-11-01", "Fixed mobile responsive issues and updated CSS"},
	{"demo_user_1", "https://jira.company.com/browse/API-123", 6.0, "Mike Chen", "2025-11-03", "Implemented authentication middleware"},
	{"demo_user_1", "https://github.com/company/mobile-app", 9.25, "Sarah Johnson", "2025-11-05", "Database optimization and performance tuning"},
	{"demo_user_1", "https://trello.com/b/abc123/project-tasks", 7.5, "David Wilson", "2025-11-07", "Code review and documentation updates"},
	{"demo_user_1", "https://github.com/company/website-redesign", 10.0, "Sarah Johnson", "2025-11-10", "Weekend work - critical bug fixes for production"},
	{"demo_user_1", "https://jira.company.com/browse/API-456", 8.0, "Mike Chen", "2025-11-12", "Integration testing and debugging"},
	{"demo_user_1", "https://github.com/company/mobile-app", 6.75, "Sarah Johnson", "2025-11-14", "UI component refactoring"},
	{"demo_user_1", "https://trello.com/b/abc123/project-tasks", 9.5, "David Wilson", "2025-11-17", "User acceptance testing preparation"},
	{"demo_user_1", "https://github.com/company/website-redesign", 8.25, "Sarah Johnson", "2025-11-19", "Performance optimization and caching implementation"},
	{"demo_user_1", "https://jira.company.com/browse/API-789", 7.0, "Mike Chen", "2025-11-21", "API documentation and examples"},
	{"demo_user_1", "https://github.com/company/mobile-app", 10.5, "Sarah Johnson", "2025-11-24", "Weekend deployment support and monitoring"},

	{"demo_user_2", "https://github.com/company/design-system", 8.0, "Tom Anderson", "2025-11-02", "Component library updates and testing"},
	{"demo_user_2", "https://figma.com/file/abc/design-specs", 6.5, "Lisa Park", "2025-11-04", "UI mockup revisions based on feedback"},
	{"demo_user_2", "https://github.com/company/design-system", 9.0, "Tom Anderson", "2025-11-06", "Accessibility improvements and WCAG compliance"},
	{"demo_user_2", "https://trello.com/b/xyz789/design-tasks", 7.25, "Lisa Park", "2025-11-08", "Brand guideline documentation"},
	{"demo_user_2", "https://figma.com/file/abc/design-specs", 8.75, "Tom Anderson", "2025-11-11", "Weekend design review and finalization"},
	{"demo_user_2", "https://github.com/company/design-system", 6.0, "Lisa Park", "2025-11-13", "Code cleanup and documentation"},
	{"demo_user_2", "https://trello.com/b/xyz789/design-tasks", 8.5, "Tom Anderson", "2025-11-15", "Cross-browser testing and fixes"},
	{"demo_user_2", "https://figma.com/file/abc/design-specs", 7.75, "Lisa Park", "2025-11-18", "Design system handoff to development team"},
	{"demo_user_2", "https://github.com/company/design-system", 9.25, "Tom Anderson", "2025-11-20", "Performance optimization for design components"},
	{"demo_user_2", "https://trello.com/b/xyz789/design-tasks", 8.0, "Lisa Park", "2025-11-22", "User testing preparation and setup"},
	{"demo_user_2", "https://figma.com/file/abc/design-specs", 10.0, "Tom Anderson", "2025-11-25", "Weekend final testing and quality assurance"},
}

// Seed loads the two demo users when the store has no users, and their
// November 2025 entries when the store has no entries.
func (s *Service) Seed() (SeedResult, error) {
	var result SeedResult

	users, err := s.store.ListUsers()
	if err != nil {
		return result, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		for _, user := range seedUsers {
			if err := s.store.InsertUser(user); err != nil {
				return result, fmt.Errorf("seed user %s: %w", user.Email, err)
			}
			result.Users++
		}
	}

	entries, err := s.store.ListEntries()
	if err != nil {
		return result, fmt.Errorf("list entries: %w", err)
	}
	if len(entries) > 0 {
		return result, nil
	}

	for _, seed := range seedEntries {
		if _, found, err := s.store.GetUserByID(seed.userID); err != nil {
			return result, fmt.Errorf("look up user %s: %w", seed.userID, err)
		} else if !found {
			continue
		}
		date, err := worklog.ParseDate(seed.date)
		if err != nil {
			return result, err
		}
		_, err = s.Entries.Append(seed.userID, worklog.Draft{
			ProjectLink: seed.projectLink,
			HoursWorked: seed.hours,
			Supervisor:  seed.supervisor,
			Date:        date,
			Notes:       seed.notes,
		})
		if err != nil {
			return result, fmt.Errorf("seed entry %s: %w", seed.date, err)
		}
		result.Entries++
	}
	return result, nil
}
