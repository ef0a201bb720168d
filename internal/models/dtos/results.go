package dtos

// Typed workflow results: the structured outcome plus the entity view the
// caller renders on success.

type EventResult struct {
	OperationResult
	Event *EventDTO `json:"data,omitempty"`
}

type EventListResult struct {
	OperationResult
	Events []EventDTO `json:"data"`
}

type StoryResult struct {
	OperationResult
	Story *StoryDTO `json:"data,omitempty"`
}

type StoryListResult struct {
	OperationResult
	Stories []StoryDTO `json:"data"`
}

type MentorResult struct {
	OperationResult
	Mentor *MentorDTO `json:"data,omitempty"`
}

type MentorListResult struct {
	OperationResult
	Mentors []MentorDTO `json:"data"`
}

// MentorStatusResult answers "has this email applied, and where does the
// application stand" for the applicant's own dashboard.
type MentorStatusResult struct {
	IsMentor bool       `json:"isMentor"`
	Status   string     `json:"status,omitempty"`
	Mentor   *MentorDTO `json:"data,omitempty"`
}

type MentorMessageResult struct {
	OperationResult
	MentorMessage *MentorMessageDTO `json:"data,omitempty"`
}

type MentorMessageListResult struct {
	OperationResult
	Messages []MentorMessageDTO `json:"data"`
}

type PostResult struct {
	OperationResult
	Post *PostDTO `json:"data,omitempty"`
}

type PostListResult struct {
	OperationResult
	Posts []PostDTO `json:"data"`
}

type InternshipResult struct {
	OperationResult
	Internship *InternshipDTO `json:"data,omitempty"`
}

type InternshipListResult struct {
	OperationResult
	Internships []InternshipDTO `json:"data"`
}

type UserResult struct {
	OperationResult
	User *UserDTO `json:"data,omitempty"`
}

type UserListResult struct {
	OperationResult
	Users []UserDTO `json:"data"`
}

// AnalyticsDTO aggregates identity-provider accounts for the admin
// dashboard.
type AnalyticsDTO struct {
	UsersByRole   map[string]int `json:"usersByRole"`
	UsersByBranch map[string]int `json:"usersByBranch"`
	ActiveUsers   ActiveUsersDTO `json:"activeUsers"`
	TotalUsers    int            `json:"totalUsers"`
}

type ActiveUsersDTO struct {
	LastWeek  int `json:"lastWeek"`
	LastMonth int `json:"lastMonth"`
}

type AnalyticsResult struct {
	OperationResult
	Analytics *AnalyticsDTO `json:"data,omitempty"`
}

// PortalStatsDTO is the entity-count read model behind the admin
// dashboard header.
type PortalStatsDTO struct {
	TotalEvents      int `json:"totalEvents" db:"total_events"`
	ActiveEvents     int `json:"activeEvents" db:"active_events"`
	TotalStories     int `json:"totalStories" db:"total_stories"`
	PublishedStories int `json:"publishedStories" db:"published_stories"`
	PendingMentors   int `json:"pendingMentors" db:"pending_mentors"`
	ApprovedMentors  int `json:"approvedMentors" db:"approved_mentors"`
	TotalPosts       int `json:"totalPosts" db:"total_posts"`
	TotalInternships int `json:"totalInternships" db:"total_internships"`
}

type PortalStatsResult struct {
	OperationResult
	Stats *PortalStatsDTO `json:"data,omitempty"`
}
