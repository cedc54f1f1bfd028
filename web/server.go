// Package web serves the JSON API, the monthly dashboard pages and the
// read-only shared report page. There is no session handling: user IDs in the
// path select whose data is shown.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"overtrack/account"
	"overtrack/dashboard"
	"overtrack/importer"
	"overtrack/internal/logging"
	"overtrack/output"
	"overtrack/share"
	"overtrack/stats"
	"overtrack/worklog"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	svc     *dashboard.Service
	baseURL string
	logger  *zap.Logger
	now     func() time.Time

	mux *http.ServeMux
}

type indexPageView struct {
	Title        string
	CurrentMonth string
	Users        []stats.UserSummary
}

type monthPageView struct {
	Title         string
	User          worklog.Profile
	CurrentMonth  string
	PreviousMonth string
	NextMonth     string
	Stats         StatsView
	Bars          []BarView
	Entries       []EntryView
}

type sharePageView struct {
	Title    string
	UserName string
	Month    string
	SharedAt string
	Stats    StatsView
	Bars     []BarView
	Entries  []EntryView
}

type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type shareResponse struct {
	worklog.SharedReport
	URL string `json:"url"`
}

type importResponse struct {
	FilesProcessed int `json:"filesProcessed"`
	RowsRead       int `json:"rowsRead"`
	RowsMapped     int `json:"rowsMapped"`
	RowsSkipped    int `json:"rowsSkipped"`
	RowsPersisted  int `json:"rowsPersisted"`
}

type importErrorResponse struct {
	Error         string `json:"error"`
	RowsPersisted int    `json:"rowsPersisted"`
}

type backupImportResponse struct {
	Imported int `json:"imported"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(svc *dashboard.Service, baseURL string, logger *zap.Logger) http.Handler {
	server := &Server{
		svc:     svc,
		baseURL: baseURL,
		logger:  logging.Named(logger, "web"),
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /users/{user}", server.handleMonthPicker)
	mux.HandleFunc("GET /users/{user}/month/{month}", server.handleMonth)
	mux.HandleFunc("POST /api/users", server.handleAPIRegister)
	mux.HandleFunc("POST /api/session", server.handleAPISession)
	mux.HandleFunc("GET /api/users/{user}/entries", server.handleAPIEntriesList)
	mux.HandleFunc("POST /api/users/{user}/entries", server.handleAPIEntryCreate)
	mux.HandleFunc("PATCH /api/users/{user}/entries/{id}", server.handleAPIEntryPatch)
	mux.HandleFunc("DELETE /api/users/{user}/entries/{id}", server.handleAPIEntryDelete)
	mux.HandleFunc("GET /api/users/{user}/stats/{month}", server.handleAPIStats)
	mux.HandleFunc("GET /api/users/{user}/report/{month}", server.handleAPIReport)
	mux.HandleFunc("POST /api/users/{user}/shares/{month}", server.handleAPIShareCreate)
	mux.HandleFunc("GET /api/shares/{id}", server.handleAPIShareGet)
	mux.HandleFunc("GET /api/users/{user}/backup", server.handleAPIBackupExport)
	mux.HandleFunc("POST /api/users/{user}/backup", server.handleAPIBackupImport)
	mux.HandleFunc("POST /api/users/{user}/import", server.handleAPIImport)
	mux.HandleFunc("GET /api/admin/users", server.handleAPIAdminUsers)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(recorder, r)
	s.logger.Info("http request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", recorder.status),
		zap.Duration("duration", time.Since(start)),
	)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if shareID := strings.TrimSpace(r.URL.Query().Get(share.QueryParam)); shareID != "" {
		s.renderShare(w, r, shareID)
		return
	}

	users, err := s.svc.UsersOverview()
	if err != nil {
		s.pageError(w, err)
		return
	}
	view := indexPageView{
		Title:        "overtrack",
		CurrentMonth: worklog.MonthOf(s.now()).String(),
		Users:        users,
	}
	if err := renderTemplate(w, "index.html", view); err != nil {
		s.pageError(w, err)
	}
}

// renderShare shows a shared report. Unknown IDs go back to the landing page.
func (s *Server) renderShare(w http.ResponseWriter, r *http.Request, shareID string) {
	report, found, err := s.svc.ResolveShare(shareID)
	if err != nil {
		s.pageError(w, err)
		return
	}
	if !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	view := sharePageView{
		Title:    fmt.Sprintf("%s - %s", report.UserName, report.Month),
		UserName: report.UserName,
		Month:    report.Month.String(),
		SharedAt: report.CreatedAt.Format("2006-01-02"),
		Stats:    BuildStatsView(report.Stats),
		Bars:     BuildBars(report.Month, report.Stats.ChartData),
		Entries:  BuildRedactedViews(report.Entries),
	}
	if err := renderTemplate(w, "share.html", view); err != nil {
		s.pageError(w, err)
	}
}

func (s *Server) handleMonthPicker(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	month := worklog.MonthOf(s.now())
	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		parsed, err := worklog.ParseMonth(raw)
		if err != nil {
			http.Error(w, "invalid month format (expected YYYY-MM)", http.StatusBadRequest)
			return
		}
		month = parsed
	}
	http.Redirect(w, r, monthPath(userID, month), http.StatusFound)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, err := worklog.ParseMonth(strings.TrimSpace(r.PathValue("month")))
	if err != nil {
		http.Error(w, "invalid month format (expected YYYY-MM)", http.StatusBadRequest)
		return
	}

	overview, err := s.svc.Overview(r.PathValue("user"), month)
	if err != nil {
		s.pageError(w, err)
		return
	}

	view := monthPageView{
		Title:         fmt.Sprintf("%s - %s", overview.User.Name, month),
		User:          overview.User,
		CurrentMonth:  month.String(),
		PreviousMonth: month.Previous().String(),
		NextMonth:     month.Next().String(),
		Stats:         BuildStatsView(overview.Stats),
		Bars:          BuildBars(month, overview.Stats.ChartData),
		Entries:       BuildEntryViews(overview.Entries),
	}
	if err := renderTemplate(w, "month.html", view); err != nil {
		s.pageError(w, err)
	}
}

func (s *Server) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var body account.RegisterInput
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid json body: %v", err)})
		return
	}
	profile, err := s.svc.Accounts.Register(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	var body sessionRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid json body: %v", err)})
		return
	}
	profile, err := s.svc.Accounts.Authenticate(body.Email, body.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAPIEntriesList(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	var month worklog.Month
	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		parsed, err := parseMonthParam(raw)
		if err != nil {
			s.writeError(w, err)
			return
		}
		month = parsed
	}

	if _, err := s.svc.Accounts.Lookup(userID); err != nil {
		s.writeError(w, err)
		return
	}
	entries, err := s.svc.Entries.ListByUser(userID, month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAPIEntryCreate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user")
	var draft worklog.Draft
	if err := decodeJSON(r, &draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid json body: %v", err)})
		return
	}

	if _, err := s.svc.Accounts.Lookup(userID); err != nil {
		s.writeError(w, err)
		return
	}
	entry, err := s.svc.Entries.Append(userID, draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleAPIEntryPatch(w http.ResponseWriter, r *http.Request) {
	var patch worklog.Patch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid json body: %v", err)})
		return
	}
	if patch.IsEmpty() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "patch must change at least one field"})
		return
	}

	entry, err := s.svc.Entries.Update(r.PathValue("id"), r.PathValue("user"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAPIEntryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Entries.Remove(r.PathValue("id"), r.PathValue("user")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r.PathValue("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	overview, err := s.svc.Overview(r.PathValue("user"), month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview.Stats)
}

// handleAPIReport streams the month as a CSV or Excel download.
func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r.PathValue("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	overview, err := s.svc.Overview(r.PathValue("user"), month)
	if err != nil {
		s.writeError(w, err)
		return
	}

	extension, contentType := "csv", "text/csv"
	if _, ok := writer.(*output.ExcelWriter); ok {
		extension, contentType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	dir, err := os.MkdirTemp("", "overtrack-report-*")
	if err != nil {
		s.writeError(w, fmt.Errorf("create report dir: %w", err))
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report."+extension)
	report := output.NewReport(overview.User.Name, month, overview.Entries, overview.Stats)
	if err := writer.Write(path, report); err != nil {
		s.writeError(w, err)
		return
	}

	file, err := os.Open(path)
	if err != nil {
		s.writeError(w, fmt.Errorf("open report: %w", err))
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("overtime-%s.%s", month, extension)))
	if _, err := io.Copy(w, file); err != nil {
		s.logger.Warn("stream report", zap.Error(err))
	}
}

func (s *Server) handleAPIShareCreate(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r.PathValue("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.svc.ShareMonth(r.PathValue("user"), month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{SharedReport: report, URL: share.URL(s.baseURL, report.ID)})
}

func (s *Server) handleAPIShareGet(w http.ResponseWriter, r *http.Request) {
	report, found, err := s.svc.ResolveShare(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "shared report not found"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAPIBackupExport(w http.ResponseWriter, r *http.Request) {
	backup, err := s.svc.ExportBackup(r.PathValue("user"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "overtrack-backup-"+backup.ExportedAt.Format("2006-01-02")+".json"))
	writeJSON(w, http.StatusOK, backup)
}

func (s *Server) handleAPIBackupImport(w http.ResponseWriter, r *http.Request) {
	var backup dashboard.Backup
	if err := decodeJSON(r, &backup); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid json body: %v", err)})
		return
	}
	imported, err := s.svc.ImportBackup(r.PathValue("user"), backup)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backupImportResponse{Imported: imported})
}

// handleAPIImport appends the rows of an uploaded CSV or Excel file.
func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	result, err := importer.Run([]string{tmpPath}, strings.TrimSpace(r.FormValue("format")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	persisted, err := s.svc.ImportDrafts(r.PathValue("user"), result.Drafts)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("import failed", zap.Error(err), zap.Int("rowsPersisted", persisted))
		}
		writeJSON(w, status, importErrorResponse{Error: err.Error(), RowsPersisted: persisted})
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		FilesProcessed: result.FilesProcessed,
		RowsRead:       result.RowsRead,
		RowsMapped:     result.RowsMapped,
		RowsSkipped:    result.RowsSkipped,
		RowsPersisted:  persisted,
	})
}

func (s *Server) handleAPIAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.UsersOverview()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) pageError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("render page", zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, worklog.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, worklog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, worklog.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").Funcs(template.FuncMap{
		"fmtHours": func(value float64) string {
			return fmt.Sprintf("%.1f", value)
		},
	}).ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func monthPath(userID string, month worklog.Month) string {
	return "/users/" + url.PathEscape(userID) + "/month/" + month.String()
}

func parseMonthParam(raw string) (worklog.Month, error) {
	month, err := worklog.ParseMonth(strings.TrimSpace(raw))
	if err != nil {
		return worklog.Month{}, &worklog.ValidationError{Field: "month", Reason: "must be formatted as YYYY-MM"}
	}
	return month, nil
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
