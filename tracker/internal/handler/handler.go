package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	md "github.com/Astemirdum/book-tracker/pkg/middleware"
	"github.com/Astemirdum/book-tracker/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	svc    TrackerService
	tokens md.TokenParser
	log    *zap.Logger
	now    func() time.Time
}

type Option func(h *Handler)

// WithClock sets the clock used for error timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func New(svc TrackerService, tokens md.TokenParser, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:    svc,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS     = 10
		apiRPS      = 100
		uploadLimit = "6M"
	)
	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, md.AuthorizationHeader},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/users", h.Register)
	api.POST("/login", h.Login)
	api.POST("/login/refresh", h.Refresh)

	secured := api.Group("", md.JwtAuthentication(h.tokens))
	upload := middleware.BodyLimit(uploadLimit)

	secured.GET("/users/:id", h.GetUser)
	secured.POST("/users/profile", h.UploadProfileImage, upload)

	secured.POST("/books", h.CreateBook)
	secured.GET("/books", h.ListBooks)
	secured.GET("/books/:id", h.GetBook)
	secured.PATCH("/books/:id", h.UpdateBook)
	secured.DELETE("/books/:id", h.DeleteBook)
	secured.PUT("/books/:id/cover", h.UploadCover, upload)

	secured.POST("/readings/:bookId", h.StartReading)
	secured.GET("/readings/:bookId", h.ListSessions)
	secured.GET("/readings/session/:sessionId", h.GetSession)
	secured.DELETE("/readings/session/:sessionId", h.DeleteSession)
	secured.POST("/readings/add/:sessionId", h.AddReading)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
	}
	return p, nil
}

func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// bind decodes the request into req and runs its struct tags.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is invalid")
	}
	return c.Validate(req)
}
