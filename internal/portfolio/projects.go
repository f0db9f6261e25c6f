package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSlugTaken is returned when an explicitly requested slug belongs to another project.
var ErrSlugTaken = errors.New("slug already in use")

// ProjectInput is the full set of editable project fields.
type ProjectInput struct {
	Title            string   `json:"title" binding:"required"`
	Slug             string   `json:"slug"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Thumbnail        string   `json:"thumbnail"`
	HeroImage        string   `json:"heroImage"`
	Featured         bool     `json:"featured"`
	Published        bool     `json:"published"`
	Year             int      `json:"year"`
	GithubURL        string   `json:"githubUrl"`
	LiveURL          string   `json:"liveUrl"`
	KeyFeatures      []string `json:"keyFeatures"`
	SortOrder        int      `json:"sortOrder"`
	Technologies     []string `json:"technologies"`
}

// ProjectDetail is a published project with its description rendered to HTML.
type ProjectDetail struct {
	models.Project
	DescriptionHTML string `json:"descriptionHtml"`
}

func orderedProjects(db *gorm.DB) *gorm.DB {
	return db.Preload("Technologies", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Order("sort_order ASC").Order("created_at ASC")
}

// Projects returns every project, published or not, through the cache.
func (s *Service) Projects(ctx context.Context) cache.Result[[]models.Project] {
	return cache.FetchOr(ctx, s.cache, cache.KeyProjects, s.loadProjects, []models.Project{})
}

func (s *Service) loadProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := orderedProjects(s.db.WithContext(ctx)).Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return projects, nil
}

// PublishedProjects returns the cached project list filtered to published entries.
func (s *Service) PublishedProjects(ctx context.Context) cache.Result[[]models.Project] {
	res := s.Projects(ctx)
	published := make([]models.Project, 0, len(res.Value))
	for _, p := range res.Value {
		if p.Published {
			published = append(published, p)
		}
	}
	res.Value = published
	return res
}

// PublishedProject finds a published project by slug and renders its description.
func (s *Service) PublishedProject(ctx context.Context, slug string) (*ProjectDetail, error) {
	res := s.PublishedProjects(ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	for _, p := range res.Value {
		if p.Slug != slug {
			continue
		}
		html, err := RenderMarkdown(p.Description)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", slug, err)
		}
		return &ProjectDetail{Project: p, DescriptionHTML: html}, nil
	}
	return nil, ErrNotFound
}

// AllProjects reads every project straight from the database for the admin UI.
func (s *Service) AllProjects(ctx context.Context) ([]models.Project, error) {
	return s.loadProjects(ctx)
}

// Project returns one project by ID, uncached.
func (s *Service) Project(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := orderedProjects(s.db.WithContext(ctx)).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// CreateProject stores a new project and its technologies.
func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.fillProject(tx, p, in); err != nil {
			return err
		}
		if err := tx.Omit("Technologies").Create(p).Error; err != nil {
			return err
		}
		return s.setTechnologies(tx, p, in.Technologies)
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.cache.Invalidate(cache.KeyProjects)
	s.logger.Info("project-created", zap.String("id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// UpdateProject replaces every editable field of the project with id.
func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectInput) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := s.fillProject(tx, &p, in); err != nil {
			return err
		}
		if err := tx.Omit("Technologies").Save(&p).Error; err != nil {
			return err
		}
		return s.setTechnologies(tx, &p, in.Technologies)
	})
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}

	s.cache.Invalidate(cache.KeyProjects)
	s.logger.Info("project-updated", zap.String("id", p.ID), zap.String("slug", p.Slug))
	return &p, nil
}

// DeleteProject removes a project and its technology links.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&p).Association("Technologies").Clear(); err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	s.cache.Invalidate(cache.KeyProjects)
	s.logger.Info("project-deleted", zap.String("id", id))
	return nil
}

func (s *Service) fillProject(tx *gorm.DB, p *models.Project, in ProjectInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	slug, err := s.uniqueSlug(tx, p.ID, in.Slug, title)
	if err != nil {
		return err
	}
	year := in.Year
	if year == 0 {
		year = s.now().Year()
	}

	p.Title = title
	p.Slug = slug
	p.ShortDescription = in.ShortDescription
	p.Description = in.Description
	p.Thumbnail = in.Thumbnail
	p.HeroImage = in.HeroImage
	p.Featured = in.Featured
	p.Published = in.Published
	p.Year = year
	p.GithubURL = in.GithubURL
	p.LiveURL = in.LiveURL
	p.KeyFeatures = models.StringList(in.KeyFeatures).Compact()
	p.SortOrder = in.SortOrder
	return nil
}

// uniqueSlug picks the slug for project id. An explicit slug must be free;
// a slug derived from the title gets a random suffix on collision.
func (s *Service) uniqueSlug(tx *gorm.DB, id, explicit, title string) (string, error) {
	if explicit = Slugify(explicit); explicit != "" {
		taken, err := slugTaken(tx, id, explicit)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("%w: %s", ErrSlugTaken, explicit)
		}
		return explicit, nil
	}

	base := Slugify(title)
	if base == "" {
		base = "project"
	}
	slug := base
	for i := 0; i < 5; i++ {
		taken, err := slugTaken(tx, id, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + slugSuffix()
	}
	return "", fmt.Errorf("%w: %s", ErrSlugTaken, base)
}

func slugTaken(tx *gorm.DB, id, slug string) (bool, error) {
	q := tx.Model(&models.Project{}).Where("slug = ?", slug)
	if id != "" {
		q = q.Where("id <> ?", id)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// setTechnologies finds or creates each named technology and links exactly
// that set to p.
func (s *Service) setTechnologies(tx *gorm.DB, p *models.Project, names []string) error {
	techs := make([]models.Technology, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range models.StringList(names).Compact() {
		if seen[name] {
			continue
		}
		seen[name] = true

		var t models.Technology
		if err := tx.Where(models.Technology{Name: name}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("technology %q: %w", name, err)
		}
		techs = append(techs, t)
	}

	assoc := tx.Model(p).Association("Technologies")
	if len(techs) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		p.Technologies = []models.Technology{}
		return nil
	}
	if err := assoc.Replace(techs); err != nil {
		return err
	}
	p.Technologies = techs
	return nil
}
