package model

// Technology is a technology badge attached to a project.
// Icon is an opaque tag (e.g. "react", "nextjs") that the frontend
// resolves against its own icon table.
type Technology struct {
	Name string `json:"name" koanf:"name"`
	Icon string `json:"icon,omitempty" koanf:"icon"`
}

// Project is one entry of the project gallery.
// LongDescription may contain HTML and is sanitized before serving.
type Project struct {
	ID               string       `json:"id" koanf:"id"`
	Title            string       `json:"title" koanf:"title"`
	ShortDescription string       `json:"short_description" koanf:"short_description"`
	LongDescription  string       `json:"long_description" koanf:"long_description"`
	ImageURL         string       `json:"image_url" koanf:"image_url"`
	Technologies     []Technology `json:"technologies" koanf:"technologies"`
	Duration         string       `json:"duration" koanf:"duration"`
	Collaborators    []string     `json:"collaborators,omitempty" koanf:"collaborators"`
	LiveLink         string       `json:"live_link,omitempty" koanf:"live_link"`
	RepoLink         string       `json:"repo_link,omitempty" koanf:"repo_link"`
	Views            string       `json:"views,omitempty" koanf:"views"`
	IsPinned         bool         `json:"is_pinned,omitempty" koanf:"is_pinned"`
}

// ProfileStats holds the TikTok-styled profile counters.
type ProfileStats struct {
	Age         int    `json:"age,omitempty" koanf:"age"`
	Nationality string `json:"nationality,omitempty" koanf:"nationality"`
	Specialty   string `json:"specialty,omitempty" koanf:"specialty"`
	Following   string `json:"following,omitempty" koanf:"following"`
	Followers   string `json:"followers,omitempty" koanf:"followers"`
	Likes       string `json:"likes,omitempty" koanf:"likes"`
}

// Profile is the portfolio owner's profile page data.
type Profile struct {
	Name      string       `json:"name" koanf:"name"`
	Username  string       `json:"username" koanf:"username"`
	AvatarURL string       `json:"avatar_url" koanf:"avatar_url"`
	Bio       string       `json:"bio,omitempty" koanf:"bio"`
	Stats     ProfileStats `json:"stats" koanf:"stats"`
}

// HomeSection is one full-screen scroll-snap section of the home page.
type HomeSection struct {
	ID                 string `json:"id" koanf:"id"`
	Type               string `json:"type" koanf:"type"`
	Title              string `json:"title" koanf:"title"`
	Body               string `json:"body,omitempty" koanf:"body"`
	BackgroundImageURL string `json:"background_image_url,omitempty" koanf:"background_image_url"`
}

// Home section types.
const (
	SectionAbout      = "about"
	SectionProjects   = "projects"
	SectionExperience = "experience"
	SectionContact    = "contact"
)

// Experience is one entry of the professional journey timeline.
type Experience struct {
	Period  string `json:"period" koanf:"period"`
	Role    string `json:"role" koanf:"role"`
	Company string `json:"company" koanf:"company"`
	Summary string `json:"summary" koanf:"summary"`
}

// MemoPair is one question/answer pair of the memory-match game.
// Exactly two cards derive from each pair. The icon fields are opaque
// tags resolved by the frontend, same as Technology.Icon.
type MemoPair struct {
	Prompt     string `json:"prompt" koanf:"prompt"`
	Answer     string `json:"answer" koanf:"answer"`
	PromptIcon string `json:"prompt_icon,omitempty" koanf:"prompt_icon"`
	AnswerIcon string `json:"answer_icon,omitempty" koanf:"answer_icon"`
}

// Comment is one visitor comment on a project.
type Comment struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
