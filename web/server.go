// ABOUTME: Web UI server with embedded templates
// ABOUTME: Dashboard, company list, calendar, and activity log with a quick-log action
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
	"github.com/harperreed/touchbase/viz"
)

//go:embed templates/*
var templatesFS embed.FS

// QuickLogNote is stored on communications logged from the web UI.
const QuickLogNote = "Quick log via web UI"

type Server struct {
	engine    *schedule.Engine
	templates *template.Template
	generator *viz.GraphGenerator
	logger    *log.Logger
}

func NewServer(engine *schedule.Engine, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	loc := engine.Location()
	funcMap := template.FuncMap{
		"date": func(t time.Time) string {
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"datePtr": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.In(loc).Format("2006-01-02")
		},
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		engine:    engine,
		templates: tmpl,
		generator: viz.NewGraphGenerator(engine),
		logger:    logger.WithPrefix("web"),
	}, nil
}

// Handler returns the router for all web routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /companies", s.handleCompanies)
	mux.HandleFunc("GET /calendar", s.handleCalendar)
	mux.HandleFunc("GET /activity", s.handleActivity)
	mux.HandleFunc("GET /partials/graph", s.handleGraphPartial)
	mux.HandleFunc("POST /communications/log/{companyID}", s.handleQuickLog)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("Starting web server", "url", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// Execute the specified template (usually layout.html)
	// The data map includes ContentTemplate to specify which content block to render
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		s.logger.Error("Template error", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Stats":           viz.GenerateDashboardStats(s.engine),
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

type companyView struct {
	ID       string
	Name     string
	Every    int
	Last     *time.Time
	Next     *time.Time
	NextType string
	Status   models.ScheduleStatus
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")

	var views []companyView
	for _, c := range s.engine.Companies() {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		st := s.engine.Status(c)
		if status != "" && string(st) != status {
			continue
		}

		nextType := "-"
		if c.NextCommunicationType != nil {
			nextType = s.engine.MethodName(*c.NextCommunicationType)
		}
		views = append(views, companyView{
			ID:       c.ID.String(),
			Name:     c.Name,
			Every:    c.CommunicationPeriodicity,
			Last:     c.LastCommunication,
			Next:     c.NextCommunication,
			NextType: nextType,
			Status:   st,
		})
	}

	data := map[string]interface{}{
		"Companies":       views,
		"Query":           r.URL.Query().Get("q"),
		"Title":           "Companies",
		"ContentTemplate": "companies-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	entries := s.engine.Calendar()
	if r.URL.Query().Get("upcoming") != "" {
		now := s.engine.Now()
		var upcoming []schedule.CalendarEntry
		for _, e := range entries {
			if e.Kind == schedule.KindScheduled && !e.Time.Before(now) {
				upcoming = append(upcoming, e)
			}
		}
		entries = upcoming
	}

	data := map[string]interface{}{
		"Entries":         entries,
		"Title":           "Calendar",
		"ContentTemplate": "calendar-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	switch sortBy {
	case schedule.SortByCompany, schedule.SortByType:
	default:
		sortBy = schedule.SortByDate
	}
	descending := r.URL.Query().Get("order") != "asc"

	data := map[string]interface{}{
		"Entries":         s.engine.ActivityLog(sortBy, descending),
		"Sort":            sortBy,
		"Title":           "Activity",
		"ContentTemplate": "activity-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleGraphPartial(w http.ResponseWriter, r *http.Request) {
	dot, err := s.generator.GenerateCommunicationGraph(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"DOT": dot,
	}

	s.renderTemplate(w, "graph.html", data)
}

func (s *Server) handleQuickLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("companyID"))
	if err != nil {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	if _, err := s.engine.Company(id); err != nil {
		http.Error(w, "Company not found", http.StatusNotFound)
		return
	}

	methods := s.engine.Methods()
	if len(methods) == 0 {
		http.Error(w, "No communication methods configured", http.StatusConflict)
		return
	}

	_, err = s.engine.LogCommunication(id, models.CommunicationInput{
		CommunicationType: methods[0].ID,
		Date:              s.engine.Now().Format(time.RFC3339Nano),
		Notes:             QuickLogNote,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, err = w.Write([]byte(`<td colspan="6" class="px-4 py-3 text-green-600">✓ Communication logged</td>`))
	if err != nil {
		s.logger.Error("Error writing response", "err", err)
	}
}
