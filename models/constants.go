package models

// Resource types
const (
	ResourceTickets   = "tickets"
	ResourceTestCases = "testcases"
	ResourceStories   = "stories"
	ResourceUsers     = "users"
)
