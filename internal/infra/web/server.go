package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"guestpass/internal/domain"
	"guestpass/internal/usecase"
)

// Server is the HTML surface over the workflow use cases. All admin routes
// fail closed: the session check runs before any data is read or mutated.
type Server struct {
	requests    *usecase.RequestUseCase
	approvals   *usecase.ApprovalUseCase
	redemptions *usecase.RedemptionUseCase
	auth        *usecase.AuthUseCase
	sessions    *SessionManager
	log         *zerolog.Logger
}

func NewServer(
	requests *usecase.RequestUseCase,
	approvals *usecase.ApprovalUseCase,
	redemptions *usecase.RedemptionUseCase,
	auth *usecase.AuthUseCase,
	sessions *SessionManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		requests:    requests,
		approvals:   approvals,
		redemptions: redemptions,
		auth:        auth,
		sessions:    sessions,
		log:         logger,
	}
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID)
	r.Use(RequestLog(s.log))

	r.Get("/", s.handleRequestForm)
	r.Post("/request-access", s.handleSubmit)
	r.Get("/redeem/{token}", s.handleRedeem)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/admin/login", s.handleLoginForm)
	r.Post("/admin/login", s.handleLogin)
	r.Get("/admin/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/admin", s.handleAdminList)
		r.Post("/admin/approve/{id}", s.handleApprove)
	})

	return r
}

type sessionCtxKey struct{}

// requireSession rejects unauthenticated admin requests before any handler
// runs. Browsers get a redirect to the login form, everything else a 401.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := s.sessions.FromRequest(r)
		if !ok {
			if r.Method == http.MethodGet {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionUser(ctx context.Context) string {
	if v, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return v
	}
	return ""
}

// ----- guest routes -----

type requestFormData struct {
	FirstName, LastName, Email, ContactHandle string
	Error                                     string
}

func (s *Server) handleRequestForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, requestFormPage, requestFormData{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	data := requestFormData{
		FirstName:     r.PostFormValue("first_name"),
		LastName:      r.PostFormValue("last_name"),
		Email:         r.PostFormValue("email"),
		ContactHandle: r.PostFormValue("contact_handle"),
	}

	req, err := s.requests.Submit(r.Context(), data.FirstName, data.LastName, data.Email, data.ContactHandle)
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		data.Error = "That email address doesn't look right."
		s.render(w, http.StatusUnprocessableEntity, requestFormPage, data)
		return
	case errors.Is(err, domain.ErrInvalidArgument):
		data.Error = "First and last name are required."
		s.render(w, http.StatusUnprocessableEntity, requestFormPage, data)
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, submittedPage, struct{ Name string }{req.DisplayName()})
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	res, err := s.redemptions.Redeem(r.Context(), token)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	switch res.Status {
	case usecase.RedemptionSuccess:
		s.render(w, http.StatusOK, redeemSuccessPage, res)
	case usecase.RedemptionAlreadyUsed:
		// Expected state, not a fault; no guest details on this page.
		s.render(w, http.StatusOK, redeemUsedPage, nil)
	default:
		s.render(w, http.StatusNotFound, redeemInvalidPage, nil)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// ----- admin routes -----

type loginFormData struct {
	Error string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, loginPage, loginFormData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	admin, err := s.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.render(w, http.StatusUnauthorized, loginPage, loginFormData{Error: "Invalid username or password."})
			return
		}
		s.internalError(w, r, err)
		return
	}

	token, err := s.sessions.Issue(admin.Username)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.sessions.SetCookie(w, token)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (s *Server) handleAdminList(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.requests.ListAll(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.render(w, http.StatusOK, adminPage, struct {
		Username string
		Requests any
	}{sessionUser(r.Context()), reqs})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, _, err := s.approvals.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		s.internalError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ----- helpers -----

func (s *Server) render(w http.ResponseWriter, status int, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("render template")
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Serve runs the HTTP server until ctx is cancelled, then drains.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zerolog.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
