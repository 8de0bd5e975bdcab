// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

// Relation describes a belongs-to association attached to fetched rows.
type Relation struct {
	Field string // JSON field name attached to the row, e.g. "category"
	Table string // related table
	FK    string // foreign key column on the owning resource
}

// Resource is a static descriptor for one REST resource. The registry is
// closed: URL segments are matched against declared names only, never
// transformed into table names at runtime.
type Resource struct {
	Name       string
	Table      string
	Columns    []string // writable columns, id excluded
	Singleton  bool     // single-row content resource (latest row wins)
	Public     bool     // eligible for CDN cache headers
	Relations  []Relation
	JSONArrays []string // text columns normalized to JSON array text at the write boundary
	UpdatedAt  string   // column stamped on every update, "" if none
	Search     []string // columns matched by the list search filter
	SlugFrom   string   // column a missing slug is derived from, "" if none
}

// HasColumn reports whether name is a writable column of the resource.
func (r *Resource) HasColumn(name string) bool {
	for _, c := range r.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// IsJSONArray reports whether the column holds JSON array text.
func (r *Resource) IsJSONArray(name string) bool {
	for _, c := range r.JSONArrays {
		if c == name {
			return true
		}
	}
	return false
}

var registry = map[string]*Resource{
	"users": {
		Name:    "users",
		Table:   "user",
		Columns: []string{"email", "password", "name", "avatar", "isActive", "createdAt", "updatedAt"},
	},
	"profile": {
		Name:      "profile",
		Table:     "profile",
		Singleton: true,
		Public:    true,
		Columns: []string{
			"fullName", "greeting", "role", "bio", "shortBio", "heroImage", "aboutImage",
			"resumeUrl", "location", "email", "phone",
			"stats_project_count", "stats_exp_years", "map_embed_url",
		},
		JSONArrays: []string{"role"},
	},
	"social-links": {
		Name:    "social-links",
		Table:   "social_link",
		Public:  true,
		Columns: []string{"platform", "url", "icon"},
	},
	"projects": {
		Name:   "projects",
		Table:  "project",
		Public: true,
		Columns: []string{
			"title", "slug", "description", "content", "coverImage", "videoUrl",
			"demoUrl", "repoUrl", "tech", "categoryId", "gallery", "is_published",
			"order", "createdAt", "updatedAt",
		},
		Relations:  []Relation{{Field: "category", Table: "project_category", FK: "categoryId"}},
		JSONArrays: []string{"tech", "gallery"},
		UpdatedAt:  "updatedAt",
		Search:     []string{"title"},
		SlugFrom:   "title",
	},
	"project-categories": {
		Name:     "project-categories",
		Table:    "project_category",
		Public:   true,
		Columns:  []string{"name", "slug"},
		SlugFrom: "name",
	},
	"blog-posts": {
		Name:   "blog-posts",
		Table:  "blog_post",
		Public: true,
		Columns: []string{
			"categoryId", "title", "slug", "excerpt", "content", "coverImage", "tags",
			"is_published", "published_at", "created_at", "updated_at", "views", "likes",
		},
		Relations:  []Relation{{Field: "category", Table: "blog_category", FK: "categoryId"}},
		JSONArrays: []string{"tags"},
		UpdatedAt:  "updated_at",
		Search:     []string{"title"},
		SlugFrom:   "title",
	},
	"blog-categories": {
		Name:     "blog-categories",
		Table:    "blog_category",
		Public:   true,
		Columns:  []string{"name", "slug", "description"},
		SlugFrom: "name",
	},
	"blog-comments": {
		Name:      "blog-comments",
		Table:     "blog_comment",
		Columns:   []string{"postId", "name", "email", "content", "avatar", "createdAt", "isApproved"},
		Relations: []Relation{{Field: "post", Table: "blog_post", FK: "postId"}},
	},
	"skills": {
		Name:      "skills",
		Table:     "skill",
		Public:    true,
		Columns:   []string{"name", "percentage", "categoryId"},
		Relations: []Relation{{Field: "category", Table: "skill_category", FK: "categoryId"}},
		Search:    []string{"name"},
	},
	"skill-categories": {
		Name:     "skill-categories",
		Table:    "skill_category",
		Public:   true,
		Columns:  []string{"name", "slug"},
		SlugFrom: "name",
	},
	"experience": {
		Name:   "experience",
		Table:  "experience",
		Public: true,
		Columns: []string{
			"role", "company", "description", "type", "startDate", "endDate",
			"isCurrent", "location", "image",
		},
	},
	"education": {
		Name:  "education",
		Table: "education",
		Columns: []string{
			"institution", "degree", "field", "startDate", "endDate", "gpa", "logo",
			"coverImage", "location", "mapUrl", "description", "gallery", "attachments",
		},
		JSONArrays: []string{"gallery", "attachments"},
	},
	"certificates": {
		Name:      "certificates",
		Table:     "certificate",
		Public:    true,
		Columns:   []string{"name", "issuer", "issueDate", "credentialUrl", "image", "categoryId"},
		Relations: []Relation{{Field: "category", Table: "certificate_category", FK: "categoryId"}},
		Search:    []string{"name"},
	},
	"certificate-categories": {
		Name:     "certificate-categories",
		Table:    "certificate_category",
		Public:   true,
		Columns:  []string{"name", "slug"},
		SlugFrom: "name",
	},
	"messages": {
		Name:    "messages",
		Table:   "message",
		Columns: []string{"senderName", "email", "subject", "message", "isRead", "createdAt"},
	},
	"wa-templates": {
		Name:    "wa-templates",
		Table:   "wa_template",
		Columns: []string{"template_name", "template_content", "category", "is_active"},
	},
	"settings": {
		Name:      "settings",
		Table:     "site_settings",
		Singleton: true,
		Public:    true,
		Columns: []string{
			"theme", "seoTitle", "seoDesc", "cdn_url", "maintenanceMode",
			"maintenance_end_time", "ai_provider",
		},
	},
	"home-content": {
		Name:       "home-content",
		Table:      "home_content",
		Singleton:  true,
		Public:     true,
		Columns:    []string{"greeting_id", "roles_id", "heroImage"},
		JSONArrays: []string{"roles_id"},
	},
	"about-content": {
		Name:      "about-content",
		Table:     "about_content",
		Singleton: true,
		Public:    true,
		Columns:   []string{"short_description_id", "long_description_id", "aboutImage"},
	},
}

// Lookup returns the descriptor for a resource name.
func Lookup(name string) (*Resource, bool) {
	r, ok := registry[name]
	return r, ok
}

// Resources returns all registered resource descriptors.
func Resources() []*Resource {
	out := make([]*Resource, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	return out
}
