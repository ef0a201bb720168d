package constants

// ViewKey names a cached view that must be invalidated after a mutation.
type ViewKey string

const (
	ViewDashboard        ViewKey = "view:dashboard"
	ViewAdminDashboard   ViewKey = "view:dashboard:admin"
	ViewAlumniDashboard  ViewKey = "view:dashboard:alumni"
	ViewStudentDashboard ViewKey = "view:dashboard:student"
	ViewLanding          ViewKey = "view:landing"
	ViewEvents           ViewKey = "view:events"
	ViewStories          ViewKey = "view:stories"
	ViewMentors          ViewKey = "view:mentors"
	ViewPosts            ViewKey = "view:posts"
	ViewInternships      ViewKey = "view:internships"
)

func (v ViewKey) String() string { return string(v) }

// Views invalidated per entity kind. Mirrors which dashboards render each
// entity; workflows pass these to the invalidator after a successful write.
var (
	EventViews         = []ViewKey{ViewDashboard, ViewEvents, ViewLanding}
	StoryViews         = []ViewKey{ViewDashboard, ViewStories, ViewLanding}
	MentorViews        = []ViewKey{ViewAdminDashboard, ViewAlumniDashboard, ViewMentors}
	MentorMessageViews = []ViewKey{ViewAlumniDashboard, ViewStudentDashboard}
	PostViews          = []ViewKey{ViewDashboard, ViewPosts}
	InternshipViews    = []ViewKey{ViewDashboard, ViewInternships}
	UserViews          = []ViewKey{ViewDashboard, ViewAdminDashboard}
)
