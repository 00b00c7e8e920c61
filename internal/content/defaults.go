package content

import "github.com/juancruzdillon/portfolitok/internal/model"

// Technology badges shared by the default projects. Icons are opaque
// tags the frontend maps to its icon components.
var (
	techReact      = model.Technology{Name: "React", Icon: "react"}
	techNextjs     = model.Technology{Name: "Next.js", Icon: "nextjs"}
	techTailwind   = model.Technology{Name: "Tailwind CSS", Icon: "tailwind"}
	techNodejs     = model.Technology{Name: "Node.js", Icon: "nodejs"}
	techJavaScript = model.Technology{Name: "JavaScript", Icon: "javascript"}
	techTypeScript = model.Technology{Name: "TypeScript", Icon: "typescript"}
	techHTML       = model.Technology{Name: "HTML5", Icon: "html"}
	techCSS        = model.Technology{Name: "CSS3", Icon: "css"}
)

// DefaultData returns the compiled-in portfolio content.
func DefaultData() Data {
	return Data{
		Profile: model.Profile{
			Name:      "Juan Cruz Dillon",
			Username:  "juancruzdillon",
			AvatarURL: "https://picsum.photos/seed/profileavatar/200/200",
			Stats: model.ProfileStats{
				Age:         25,
				Nationality: "Argentina",
				Specialty:   "Front End",
			},
		},
		Projects: []model.Project{
			{
				ID:               "project-1",
				Title:            "E-commerce Platform",
				ShortDescription: "A full-stack e-commerce solution with modern features.",
				LongDescription:  "<p>Developed a comprehensive e-commerce platform enabling users to browse products, add to cart, and complete purchases. Features include user authentication, product management, order processing, and a responsive design for optimal viewing on all devices. Integrated with Stripe for payments.</p>",
				ImageURL:         "https://picsum.photos/seed/project1/600/800",
				Technologies:     []model.Technology{techReact, techNextjs, techTailwind, techNodejs, techTypeScript},
				Duration:         "3 Months",
				Collaborators:    []string{"Jane Doe (Designer)", "Mike Ross (Backend Dev)"},
				LiveLink:         "#",
				RepoLink:         "#",
			},
			{
				ID:               "project-2",
				Title:            "Social Media App",
				ShortDescription: "A social networking app focused on photo sharing.",
				LongDescription:  "<p>Built a social media application allowing users to create profiles, upload photos, follow other users, and interact with posts through likes and comments. Implemented real-time notifications and a feed algorithm. Focused on a clean UI/UX and performance.</p>",
				ImageURL:         "https://picsum.photos/seed/project2/600/800",
				Technologies:     []model.Technology{techReact, techNodejs, techJavaScript},
				Duration:         "4 Months",
				LiveLink:         "#",
			},
			{
				ID:               "project-3",
				Title:            "Portfolio Website",
				ShortDescription: "This very portfolio website, built with Next.js and Tailwind CSS.",
				LongDescription:  "<p>Designed and developed this portfolio website to showcase my skills and projects. It features a TikTok-inspired UI, responsive design, and interactive elements. The goal was to create a unique and engaging way to present my work.</p>",
				ImageURL:         "https://picsum.photos/seed/project3/600/800",
				Technologies:     []model.Technology{techNextjs, techReact, techTailwind, techTypeScript},
				Duration:         "1 Month",
				Collaborators:    []string{"Self-directed"},
				RepoLink:         "#",
			},
		},
		Sections: []model.HomeSection{
			{
				ID:                 "about-me",
				Type:               model.SectionAbout,
				Title:              "About Me",
				Body:               "<p>A passionate Front End Developer from Argentina, specializing in creating modern and responsive web applications. I love turning complex problems into beautiful, intuitive designs.</p>",
				BackgroundImageURL: "https://picsum.photos/seed/aboutmebg/1080/1920",
			},
			{
				ID:                 "my-projects",
				Type:               model.SectionProjects,
				Title:              "Projects",
				Body:               "<p>Here are some of the projects I've worked on. Click to see more details!</p>",
				BackgroundImageURL: "https://picsum.photos/seed/projectsbg/1080/1920",
			},
			{
				ID:                 "experience",
				Type:               model.SectionExperience,
				Title:              "Experience",
				Body:               "<p>My professional journey so far.</p>",
				BackgroundImageURL: "https://picsum.photos/seed/experiencebg/1080/1920",
			},
			{
				ID:                 "contact-me-section",
				Type:               model.SectionContact,
				Title:              "Contact Me",
				Body:               "<p>Have a project in mind or just want to say hi? Feel free to reach out! You can use the inbox feature below.</p>",
				BackgroundImageURL: "https://picsum.photos/seed/contactbg/1080/1920",
			},
		},
		Experience: []model.Experience{
			{
				Period:  "2021 - Present",
				Role:    "Frontend Developer",
				Company: "Tech Solutions Inc.",
				Summary: "Spearheading the development of dynamic user interfaces and enhancing application performance with modern frameworks. Collaborating with UI/UX teams to translate designs into responsive, high-quality code.",
			},
			{
				Period:  "2019 - 2021",
				Role:    "Junior Developer",
				Company: "Web Wizards Co.",
				Summary: "Contributed to diverse web development projects, focusing on front-end and back-end tasks. Gained foundational experience in agile methodologies and version control systems.",
			},
			{
				Period:  "2018",
				Role:    "Intern",
				Company: "CodeCrafters",
				Summary: "Assisted senior developers in various stages of the software development lifecycle. Focused on learning web technologies and contributing to internal tools.",
			},
		},
		Pairs: PairSet{
			Desktop: []model.MemoPair{
				{Prompt: "React", Answer: "Hooks", PromptIcon: "react"},
				{Prompt: "Next.js", Answer: "SSR", PromptIcon: "nextjs"},
				{Prompt: "Tailwind", Answer: "Utility CSS", PromptIcon: "tailwind"},
				{Prompt: "Node.js", Answer: "Event Loop", PromptIcon: "nodejs"},
				{Prompt: "TypeScript", Answer: "Types", PromptIcon: "typescript"},
				{Prompt: "JavaScript", Answer: "Closures", PromptIcon: "javascript"},
				{Prompt: "HTML5", Answer: "Semantics", PromptIcon: "html"},
				{Prompt: "CSS3", Answer: "Flexbox", PromptIcon: "css"},
			},
			Mobile: []model.MemoPair{
				{Prompt: "React", Answer: "Hooks", PromptIcon: "react"},
				{Prompt: "Next.js", Answer: "SSR", PromptIcon: "nextjs"},
				{Prompt: "Tailwind", Answer: "Utility CSS", PromptIcon: "tailwind"},
				{Prompt: "TypeScript", Answer: "Types", PromptIcon: "typescript"},
				{Prompt: "JavaScript", Answer: "Closures", PromptIcon: "javascript"},
				{Prompt: "CSS3", Answer: "Flexbox", PromptIcon: "css"},
			},
		},
	}
}
