package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/reminders"
	"github.com/dmitrijs2005/doclife/internal/server/services"
	"github.com/dmitrijs2005/doclife/internal/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	usersBasePath     = "/users"
	documentsBasePath = "/documents"
	paramID           = "id"
)

type UserService interface {
	Register(ctx context.Context, name, mobile, email, password string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, password string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, name, password string) (*services.LoginResult, error)
}

type DocumentService interface {
	Create(ctx context.Context, userID, documentType string, expiry time.Time) (*models.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
}

type ReminderTrigger interface {
	TriggerNow(ctx context.Context) (reminders.Report, error)
}

type API struct {
	users          UserService
	documents      DocumentService
	reminders      ReminderTrigger
	jwtSecret      []byte
	allowedOrigins []string
	loc            *time.Location
	logger         logging.Logger
}

type Options struct {
	SecretKey      string
	AllowedOrigins []string
	// Location interprets expiry dates sent by clients.
	Location *time.Location
}

func NewAPI(us UserService, ds DocumentService, rt ReminderTrigger, opts Options, l logging.Logger) *API {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &API{
		users:          us,
		documents:      ds,
		reminders:      rt,
		jwtSecret:      []byte(opts.SecretKey),
		allowedOrigins: opts.AllowedOrigins,
		loc:            loc,
		logger:         l.With("module", "http_api"),
	}
}

func (a *API) handle(h webutil.AppHandler) http.HandlerFunc {
	return webutil.MakeHandler(a.logger, h)
}

// Routes builds the chi router with the full middleware stack.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post(usersBasePath, a.handle(a.handleCreateUser))
	r.Post("/login", a.handle(a.handleLogin))

	r.Group(func(r chi.Router) {
		r.Use(a.accessTokenMiddleware)

		r.Route(pathWithParam(usersBasePath, paramID), func(r chi.Router) {
			r.Get("/", a.handle(a.handleGetUser))
			r.Put("/", a.handle(a.handleUpdateUser))
			r.Delete("/", a.handle(a.handleDeleteUser))
		})

		r.Post(documentsBasePath, a.handle(a.handleCreateDocument))
		r.Delete(pathWithParam(documentsBasePath, paramID), a.handle(a.handleDeleteDocument))
		r.Get(pathWithParam(documentsBasePath+"/user", paramID), a.handle(a.handleListUserDocuments))
	})

	r.Get("/send-reminders-now", a.handle(a.handleSendRemindersNow))
	r.Get("/healthz", handleHealthCheck)

	return r
}

func pathWithParam(basePath string, paramName string) string {
	return basePath + "/{" + paramName + "}"
}

func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
