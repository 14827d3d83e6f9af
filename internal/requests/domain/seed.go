package domain

import "time"

// SeedRequests returns the demo requests a fresh store starts with.
func SeedRequests() []ProjectRequest {
	return []ProjectRequest{
		{
			ID:           "req-1",
			UserID:       "user-1",
			UserEmail:    "user@example.com",
			ProjectTitle: "Blockchain Technology Applications",
			Paid:         true,
			CreatedAt:    time.Date(2023, 10, 5, 13, 25, 0, 0, time.UTC),
		},
		{
			ID:           "req-2",
			UserID:       "user-2",
			UserEmail:    "another@example.com",
			ProjectTitle: "Sustainable Architecture",
			Paid:         true,
			Completed:    true,
			CreatedAt:    time.Date(2023, 10, 2, 9, 15, 0, 0, time.UTC),
		},
	}
}
