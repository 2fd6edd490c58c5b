package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclenote/internal/i18n"
	"github.com/terraincognita07/cyclenote/internal/services"
)

// PeriodSummaries is the engine surface the handlers need.
type PeriodSummaries interface {
	Record(ctx context.Context, raw string) (string, error)
	Summarize(ctx context.Context, now time.Time) (services.Summary, error)
}

type Options struct {
	Location            *time.Location
	I18n                *i18n.Manager
	Templates           fs.FS
	SecretKey           string
	CookieSecure        bool
	SubmitRatePerMinute int
	Logger              *logrus.Logger
	Now                 func() time.Time
}

type Handler struct {
	summaries     PeriodSummaries
	location      *time.Location
	i18n          *i18n.Manager
	templates     map[string]*template.Template
	flashKey      []byte
	cookieSecure  bool
	submitLimiter *submitLimiter
	log           *logrus.Logger
	now           func() time.Time
}

func NewHandler(summaries PeriodSummaries, options Options) (*Handler, error) {
	if summaries == nil {
		return nil, errors.New("period summaries are required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.Templates == nil {
		return nil, errors.New("templates are required")
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Logger == nil {
		options.Logger = logrus.StandardLogger()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	flashKey, err := deriveFlashKey([]byte(options.SecretKey))
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, page := range []string{"index"} {
		parsed, err := template.New("base").Funcs(newTemplateFuncMap()).ParseFS(options.Templates, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	return &Handler{
		summaries:     summaries,
		location:      options.Location,
		i18n:          options.I18n,
		templates:     templates,
		flashKey:      flashKey,
		cookieSecure:  options.CookieSecure,
		submitLimiter: newSubmitLimiter(options.SubmitRatePerMinute),
		log:           options.Logger,
		now:           options.Now,
	}, nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
