package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/model"
)

// sectionRoutes maps URL paths to portfolio section names.
var sectionRoutes = map[string]string{
	"/api/personal-info":     model.SectionPersonalInfo,
	"/api/education":         model.SectionEducation,
	"/api/skills":            model.SectionSkills,
	"/api/projects":          model.SectionProjects,
	"/api/certifications":    model.SectionCertifications,
	"/api/career-highlights": model.SectionCareerHighlights,
}

// NewRouter registers every API route and wraps the mux in the shared
// middleware chain. limiter may be nil to disable rate limiting.
func NewRouter(h *Handler, contact *ContactHandler, portfolio *PortfolioHandler, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	submit := http.Handler(http.HandlerFunc(contact.Submit))
	if limiter != nil {
		submit = limiter.Middleware(submit)
	}
	mux.Handle("POST /api/contact", submit)
	mux.HandleFunc("GET /api/messages", contact.List)
	mux.HandleFunc("PUT /api/messages/{id}", contact.UpdateStatus)

	mux.HandleFunc("GET /api/portfolio", portfolio.Get)
	mux.HandleFunc("PUT /api/portfolio", portfolio.Replace)
	for path, section := range sectionRoutes {
		mux.HandleFunc("GET "+path, portfolio.Section(section))
	}

	mux.HandleFunc("/api/", h.NotFound)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}
