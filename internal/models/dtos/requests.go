package dtos

// Request payloads accepted by the workflow layer. Pointer fields mean
// "leave unchanged" on update paths.

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Image       *string `json:"image,omitempty"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Location    *string `json:"location,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type SubmitStoryRequest struct {
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Author         string  `json:"author"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	Branch         *string `json:"branch,omitempty"`
	Image          *string `json:"image,omitempty"`
	// IsPublished is accepted on the wire but ignored: submissions always
	// start unpublished no matter what the caller asserts.
	IsPublished bool `json:"isPublished,omitempty"`
}

type UpdateStoryRequest struct {
	Title          *string `json:"title,omitempty"`
	Content        *string `json:"content,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	Branch         *string `json:"branch,omitempty"`
	Image          *string `json:"image,omitempty"`
}

type ApplyMentorRequest struct {
	Specializations   []string `json:"specializations"`
	Experience        string   `json:"experience"`
	Bio               string   `json:"bio"`
	Graduated         string   `json:"graduated"`
	Branch            string   `json:"branch"`
	Company           *string  `json:"company,omitempty"`
	Role              *string  `json:"role,omitempty"`
	LinkedIn          *string  `json:"linkedin,omitempty"`
	Availability      []string `json:"availability,omitempty"`
	MentorshipFormats []string `json:"mentorshipFormats,omitempty"`
	MentorshipTopics  []string `json:"mentorshipTopics,omitempty"`
	MaxMentees        int      `json:"maxMentees,omitempty"`
}

type UpdateMentorStatusRequest struct {
	Status string `json:"status"`
}

type SendMentorMessageRequest struct {
	MentorID string `json:"mentorId"`
	Message  string `json:"message"`
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Image   *string  `json:"image,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type UpdatePostRequest struct {
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Image   *string  `json:"image,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type CreateInternshipRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Stipend     string `json:"stipend"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

type AssignRoleRequest struct {
	Role string `json:"role"`
}

type SaveProfileRequest struct {
	Role           string `json:"role"`
	Name           string `json:"name"`
	Branch         string `json:"branch,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
}

type CreateUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Branch         string `json:"branch,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Role           *string `json:"role,omitempty"`
	Branch         *string `json:"branch,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
}
