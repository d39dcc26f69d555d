package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/images"
	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type generateRequest struct {
	ClientName string   `json:"clientName"`
	Discount   int      `json:"discount"`
	MinPrice   *float64 `json:"minPrice"`
	MaxPrice   *float64 `json:"maxPrice"`
	Categories []string `json:"categories"`
	Themes     []string `json:"themes"`
	Occasions  []string `json:"occasions"`
	Names      []string `json:"productNames"`
	Custom     []string `json:"customTypes"`
}

// handleProducts returns the filtered product list. Source failures
// degrade to an empty list so the page never renders a hard error.
func (s *Server) handleProducts(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	products, err := s.source.FetchProducts(c.Request().Context())
	if err != nil {
		s.logger.Error("product fetch failed", "error", err)
		return c.JSON(http.StatusOK, []model.Product{})
	}

	q := c.QueryParams()
	filtered := s.engine.Apply(products, ParseCriteria(q), ParseSort(q))
	return c.JSON(http.StatusOK, filtered)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)

	ctx := c.Request().Context()
	sess, err := s.creds.CheckCredentials(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		s.record(c, req.Email, model.AuditFailed, "Invalid credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	case err != nil:
		s.logger.Error("credential check failed", "error", err)
		s.record(c, req.Email, model.AuditError, "Credential source unavailable")
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "login temporarily unavailable"})
	}

	sess.LoginTime = time.Now()
	if err := s.sessions.Save(c.Response(), c.Request(), sess); err != nil {
		s.logger.Error("failed to save session", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	s.record(c, req.Email, model.AuditSuccess, "Login successful")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "isAdmin": sess.IsAdmin})
}

func (s *Server) handleLogout(c echo.Context) error {
	sess, _ := s.sessions.Get(c.Request())
	if err := s.sessions.Clear(c.Response(), c.Request()); err != nil {
		s.logger.Warn("failed to clear session", "error", err)
	}
	if sess.Authenticated {
		s.record(c, sess.Email, model.AuditSuccess, "Logout")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// handleLog accepts activity entries from the page.
func (s *Server) handleLog(c echo.Context) error {
	var req logRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
	}

	status := model.AuditStatus(req.Status)
	switch status {
	case model.AuditSuccess, model.AuditFailed, model.AuditError:
	default:
		status = model.AuditSuccess
	}

	sess, _ := s.sessions.Get(c.Request())
	s.record(c, sess.Email, status, req.Message)
	return c.NoContent(http.StatusNoContent)
}

// requireSession returns the caller's session, or an auth sentinel when
// the session does not meet the requirement.
func (s *Server) requireSession(c echo.Context, admin bool) (*model.Session, error) {
	sess, _ := s.sessions.Get(c.Request())
	if !sess.Authenticated {
		return nil, common.ErrNotAuthenticated
	}
	if admin && !sess.IsAdmin {
		return nil, common.ErrNotAuthorized
	}
	return sess, nil
}

func authStatus(c echo.Context, err error) error {
	if errors.Is(err, common.ErrNotAuthorized) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
}

// handleHistory returns recent login attempts to admins.
func (s *Server) handleHistory(c echo.Context) error {
	if _, err := s.requireSession(c, true); err != nil {
		return authStatus(c, err)
	}
	if s.history == nil {
		return c.JSON(http.StatusOK, []model.AuditEntry{})
	}

	entries, err := s.history.RecentLogins(c.Request().Context(), s.cfg.HistoryLimit)
	if err != nil {
		s.logger.Error("failed to load login history", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "history unavailable"})
	}
	if entries == nil {
		entries = []model.AuditEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// handleGeneratePDF builds and delivers the catalog document for the
// caller's current filter state.
func (s *Server) handleGeneratePDF(c echo.Context) error {
	sess, err := s.requireSession(c, false)
	if err != nil {
		return authStatus(c, err)
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	criteria := model.DefaultCriteria()
	if req.MinPrice != nil && *req.MinPrice >= 0 {
		criteria.Price.Min = *req.MinPrice
	}
	if req.MaxPrice != nil && *req.MaxPrice >= criteria.Price.Min {
		criteria.Price.Max = *req.MaxPrice
	}
	criteria.Categories = nonEmpty(req.Categories)
	criteria.Themes = nonEmpty(req.Themes)
	criteria.Occasions = nonEmpty(req.Occasions)
	criteria.ProductNames = nonEmpty(req.Names)
	criteria.CustomTypes = nonEmpty(req.Custom)

	ctx := c.Request().Context()
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		s.logger.Error("product fetch failed", "error", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "product source unavailable"})
	}
	filtered := s.engine.Apply(products, criteria, model.DefaultSort())
	if len(filtered) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no products match the selected filters"})
	}

	data, err := s.generator.Generate(ctx, service.ExportRequest{
		Products:   filtered,
		ClientName: req.ClientName,
		Criteria:   criteria,
		Discount:   model.ClampDiscount(req.Discount),
	})
	if err != nil {
		s.logger.Error("pdf generation failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate catalog"})
	}

	// Spool through a temp file so a partially built document is never
	// streamed to the client.
	tmp, err := os.CreateTemp("", "catalog-*.pdf")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate catalog"})
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate catalog"})
	}
	if err := tmp.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate catalog"})
	}

	filename := downloadFilename(req.ClientName, time.Now())
	s.record(c, sess.Email, model.AuditSuccess, "Generated catalog "+filename)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.File(tmpName)
}

func (s *Server) handlePlaceholder(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/png", images.PlaceholderPNG())
}

func (s *Server) record(c echo.Context, email string, status model.AuditStatus, message string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(c.Request().Context(), model.AuditEntry{
		Timestamp: time.Now(),
		Email:     email,
		Status:    status,
		Message:   message,
		IPAddress: c.RealIP(),
	})
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// downloadFilename derives the attachment name from the client name,
// falling back to a generic prefix.
func downloadFilename(clientName string, now time.Time) string {
	base := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(clientName), "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "Product"
	}
	return fmt.Sprintf("%s_Catalog_%d.pdf", base, now.UnixMilli())
}
