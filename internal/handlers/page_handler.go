package handlers

import (
	"net/http"
	"sort"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SkillGroup is one category on the about page.
type SkillGroup struct {
	Category string         `json:"category"`
	Skills   []models.Skill `json:"skills"`
}

// Service is an offering listed on the services page.
type Service struct {
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Services is the static list shown on the services page.
var Services = []Service{
	{
		Icon:        "code",
		Title:       "API Development",
		Description: "Building scalable RESTful and GraphQL APIs with proper authentication, rate limiting, and documentation.",
		Features:    []string{"REST & GraphQL APIs", "Authentication & Authorization", "API Documentation", "Rate Limiting"},
	},
	{
		Icon:        "server",
		Title:       "Microservices Architecture",
		Description: "Designing and implementing microservices-based systems for better scalability and maintainability.",
		Features:    []string{"Service Design", "Inter-service Communication", "Service Discovery", "Load Balancing"},
	},
	{
		Icon:        "database",
		Title:       "Database Design",
		Description: "Creating efficient database schemas and optimizing queries for high-performance applications.",
		Features:    []string{"Schema Design", "Query Optimization", "Migration Strategies", "Data Modeling"},
	},
	{
		Icon:        "settings",
		Title:       "DevOps & Deployment",
		Description: "Setting up CI/CD pipelines and containerized deployments for automated and reliable releases.",
		Features:    []string{"CI/CD Pipelines", "Docker & Kubernetes", "Cloud Deployment", "Monitoring"},
	},
	{
		Icon:        "zap",
		Title:       "Performance Optimization",
		Description: "Analyzing and optimizing backend systems for improved speed, efficiency, and scalability.",
		Features:    []string{"Code Profiling", "Caching Strategies", "Load Testing", "System Optimization"},
	},
	{
		Icon:        "line-chart",
		Title:       "Technical Consulting",
		Description: "Providing expert advice on technology stack selection, architecture decisions, and best practices.",
		Features:    []string{"Architecture Review", "Tech Stack Selection", "Code Review", "Best Practices"},
	},
}

// HomePage is the data behind the landing page.
type HomePage struct {
	Profile  models.Profile          `json:"profile"`
	Featured []models.Project        `json:"featured"`
	Sources  map[string]cache.Source `json:"sources"`
}

// AboutPage is the data behind the about page.
type AboutPage struct {
	Profile    models.Profile          `json:"profile"`
	Skills     []SkillGroup            `json:"skills"`
	Experience []models.Experience     `json:"experience"`
	Sources    map[string]cache.Source `json:"sources"`
}

// ProjectsPage is the data behind the projects listing.
type ProjectsPage struct {
	Profile  models.Profile          `json:"profile"`
	Projects []models.Project        `json:"projects"`
	Sources  map[string]cache.Source `json:"sources"`
}

// ServicesPage is the data behind the services page.
type ServicesPage struct {
	Profile  models.Profile          `json:"profile"`
	Services []Service               `json:"services"`
	Sources  map[string]cache.Source `json:"sources"`
}

// GetHomePage handles GET /api/pages/home
func (h *Handler) GetHomePage(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.svc.Profile(ctx)
	projects := h.svc.PublishedProjects(ctx)

	featured := make([]models.Project, 0)
	for _, p := range projects.Value {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	c.JSON(http.StatusOK, HomePage{
		Profile:  profile.Value,
		Featured: featured,
		Sources: map[string]cache.Source{
			cache.KeyProfile:  profile.Source,
			cache.KeyProjects: projects.Source,
		},
	})
}

// GetAboutPage handles GET /api/pages/about
func (h *Handler) GetAboutPage(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.svc.Profile(ctx)
	skills := h.svc.Skills(ctx)
	experience := h.svc.Experience(ctx)

	c.JSON(http.StatusOK, AboutPage{
		Profile:    profile.Value,
		Skills:     groupSkills(skills.Value),
		Experience: experience.Value,
		Sources: map[string]cache.Source{
			cache.KeyProfile:    profile.Source,
			cache.KeySkills:     skills.Source,
			cache.KeyExperience: experience.Source,
		},
	})
}

// GetProjectsPage handles GET /api/pages/projects
func (h *Handler) GetProjectsPage(c *gin.Context) {
	ctx := c.Request.Context()
	profile := h.svc.Profile(ctx)
	projects := h.svc.PublishedProjects(ctx)

	c.JSON(http.StatusOK, ProjectsPage{
		Profile:  profile.Value,
		Projects: projects.Value,
		Sources: map[string]cache.Source{
			cache.KeyProfile:  profile.Source,
			cache.KeyProjects: projects.Source,
		},
	})
}

// GetServicesPage handles GET /api/pages/services
func (h *Handler) GetServicesPage(c *gin.Context) {
	profile := h.svc.Profile(c.Request.Context())
	c.JSON(http.StatusOK, ServicesPage{
		Profile:  profile.Value,
		Services: Services,
		Sources:  map[string]cache.Source{cache.KeyProfile: profile.Source},
	})
}

// groupSkills buckets skills by category, categories in alphabetical order.
func groupSkills(skills []models.Skill) []SkillGroup {
	byCategory := make(map[string][]models.Skill)
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	groups := make([]SkillGroup, 0, len(byCategory))
	for category, list := range byCategory {
		groups = append(groups, SkillGroup{Category: category, Skills: list})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups
}
