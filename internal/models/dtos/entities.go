package dtos

import (
	"time"

	"alumnihub/portal/internal/identity"
	"alumnihub/portal/internal/models/entities"
)

// Entity views handed to the view layer: identifiers as strings, dates as
// ISO-8601 strings, nothing store-specific.

func iso(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

type EventDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Image       *string `json:"image,omitempty"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func FromEvent(e *entities.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        iso(e.Date),
		Location:    e.Location,
		Image:       e.Image,
		IsActive:    e.IsActive,
		CreatedAt:   iso(e.CreatedAt),
		UpdatedAt:   iso(e.UpdatedAt),
	}
}

func FromEvents(events []entities.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for i := range events {
		out = append(out, FromEvent(&events[i]))
	}
	return out
}

type StoryDTO struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Author         string  `json:"author"`
	AuthorEmail    string  `json:"authorEmail,omitempty"`
	GraduationYear *string `json:"graduationYear,omitempty"`
	Branch         *string `json:"branch,omitempty"`
	Image          *string `json:"image,omitempty"`
	IsPublished    bool    `json:"isPublished"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func FromStory(s *entities.Story) StoryDTO {
	return StoryDTO{
		ID:             s.ID,
		Title:          s.Title,
		Content:        s.Content,
		Author:         s.Author,
		AuthorEmail:    s.AuthorEmail,
		GraduationYear: s.GraduationYear,
		Branch:         s.Branch,
		Image:          s.Image,
		IsPublished:    s.IsPublished,
		CreatedAt:      iso(s.CreatedAt),
		UpdatedAt:      iso(s.UpdatedAt),
	}
}

func FromStories(stories []entities.Story) []StoryDTO {
	out := make([]StoryDTO, 0, len(stories))
	for i := range stories {
		out = append(out, FromStory(&stories[i]))
	}
	return out
}

type MentorDTO struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Email             string   `json:"email"`
	Name              string   `json:"name"`
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
	MaxMentees        int      `json:"maxMentees"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func FromMentor(m *entities.Mentor) MentorDTO {
	return MentorDTO{
		ID:                m.ID,
		UserID:            m.UserID,
		Email:             m.Email,
		Name:              m.Name,
		Specializations:   m.Specializations,
		Experience:        m.Experience,
		Bio:               m.Bio,
		Graduated:         m.Graduated,
		Branch:            m.Branch,
		Company:           m.Company,
		Role:              m.RoleTitle,
		LinkedIn:          m.LinkedIn,
		Availability:      m.Availability,
		MentorshipFormats: m.MentorshipFormats,
		MentorshipTopics:  m.MentorshipTopics,
		MaxMentees:        m.MaxMentees,
		Status:            m.Status.String(),
		CreatedAt:         iso(m.CreatedAt),
		UpdatedAt:         iso(m.UpdatedAt),
	}
}

func FromMentors(mentors []entities.Mentor) []MentorDTO {
	out := make([]MentorDTO, 0, len(mentors))
	for i := range mentors {
		out = append(out, FromMentor(&mentors[i]))
	}
	return out
}

type MentorMessageDTO struct {
	ID           string `json:"id"`
	MentorID     string `json:"mentorId"`
	StudentID    string `json:"studentId"`
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	Message      string `json:"message"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"createdAt"`
}

func FromMentorMessage(m *entities.MentorMessage) MentorMessageDTO {
	return MentorMessageDTO{
		ID:           m.ID,
		MentorID:     m.MentorID,
		StudentID:    m.StudentID,
		StudentName:  m.StudentName,
		StudentEmail: m.StudentEmail,
		Message:      m.Message,
		Read:         m.Read,
		CreatedAt:    iso(m.CreatedAt),
	}
}

func FromMentorMessages(messages []entities.MentorMessage) []MentorMessageDTO {
	out := make([]MentorMessageDTO, 0, len(messages))
	for i := range messages {
		out = append(out, FromMentorMessage(&messages[i]))
	}
	return out
}

type CommentDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	AuthorID  string `json:"authorId"`
	CreatedAt string `json:"createdAt"`
}

type PostDTO struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Author        string       `json:"author"`
	AuthorID      string       `json:"authorId"`
	AuthorEmail   *string      `json:"authorEmail,omitempty"`
	Image         *string      `json:"image,omitempty"`
	Likes         int          `json:"likes"`
	Comments      []CommentDTO `json:"comments"`
	Tags          []string     `json:"tags,omitempty"`
	IsStudentPost bool         `json:"isStudentPost"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`
}

func FromPost(p *entities.Post) PostDTO {
	comments := make([]CommentDTO, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentDTO{
			ID:        c.ID,
			Content:   c.Content,
			Author:    c.Author,
			AuthorID:  c.AuthorID,
			CreatedAt: iso(c.CreatedAt),
		})
	}
	return PostDTO{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Author:        p.Author,
		AuthorID:      p.AuthorID,
		AuthorEmail:   p.AuthorEmail,
		Image:         p.Image,
		Likes:         p.Likes,
		Comments:      comments,
		Tags:          p.Tags,
		IsStudentPost: p.IsStudentPost,
		CreatedAt:     iso(p.CreatedAt),
		UpdatedAt:     iso(p.UpdatedAt),
	}
}

func FromPosts(posts []entities.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		out = append(out, FromPost(&posts[i]))
	}
	return out
}

type InternshipDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Stipend     string `json:"stipend"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
}

func FromInternship(i *entities.Internship, now time.Time) InternshipDTO {
	return InternshipDTO{
		ID:          i.ID,
		Title:       i.Title,
		Company:     i.Company,
		Location:    i.Location,
		Type:        i.Type.String(),
		Duration:    i.Duration,
		Stipend:     i.Stipend,
		Description: i.Description,
		Deadline:    iso(i.Deadline),
		IsActive:    i.IsActive(now),
		CreatedAt:   iso(i.CreatedAt),
	}
}

func FromInternships(internships []entities.Internship, now time.Time) []InternshipDTO {
	out := make([]InternshipDTO, 0, len(internships))
	for i := range internships {
		out = append(out, FromInternship(&internships[i], now))
	}
	return out
}

type UserDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Branch         string `json:"branch,omitempty"`
	GraduationYear string `json:"graduationYear,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

func FromUser(u *identity.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Name:           u.DisplayName,
		Email:          u.Email,
		Role:           u.Role.String(),
		Branch:         u.Branch,
		GraduationYear: u.GraduationYear,
		PhoneNumber:    u.PhoneNumber,
		CreatedAt:      iso(u.CreatedAt),
	}
}

func FromUsers(users []identity.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}
