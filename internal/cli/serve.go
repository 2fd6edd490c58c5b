package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclenote/internal/api"
	"github.com/terraincognita07/cyclenote/internal/config"
	"github.com/terraincognita07/cyclenote/internal/security"
	"github.com/terraincognita07/cyclenote/internal/templates"
)

const (
	browserOpenDelay         = 2 * time.Second
	shutdownTimeout          = 10 * time.Second
	minSecretKeyLength       = 32
	generatedSecretKeyLength = 48
	insecureSecretKey        = "change_me_in_production"
)

var openURL = browser.OpenURL

type serveOptions struct {
	open bool
	host string
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	options := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, options)
		},
	}

	cmd.Flags().BoolVar(&options.open, "open", false, "open the default browser once the server is up (overrides OPEN_BROWSER)")
	cmd.Flags().StringVar(&options.host, "host", "", "listen host (overrides HOST)")
	cmd.Flags().IntVarP(&options.port, "port", "p", 0, "listen port (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, options *serveOptions) error {
	env, err := root.open(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	cfg := env.cfg
	flags := cmd.Flags()
	if flags.Lookup("open") != nil && flags.Changed("open") {
		cfg.OpenBrowser = options.open
	}
	if flags.Lookup("host") != nil && flags.Changed("host") {
		cfg.Host = options.host
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port = options.port
	}

	secretKey, err := resolveSecretKey(cfg, env.log)
	if err != nil {
		return err
	}
	cookieSecure := cfg.Environment == "production"

	handler, err := api.NewHandler(env.summaries, api.Options{
		Location:            cfg.Location,
		I18n:                env.i18n,
		Templates:           templates.Files,
		SecretKey:           secretKey,
		CookieSecure:        cookieSecure,
		SubmitRatePerMinute: cfg.SubmitRatePerMinute,
		Logger:              env.log,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	logWriter := env.log.WriterLevel(logrus.InfoLevel)
	defer logWriter.Close()
	app := newServerApp(handler, logWriter, cookieSecure)

	sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			env.log.WithError(err).Error("server shutdown failed")
		}
	}()

	if cfg.OpenBrowser {
		go openBrowserAfter(sigCtx, cfg.BaseURL(), browserOpenDelay, env.log)
	}

	env.log.WithFields(logrus.Fields{
		"addr":  cfg.ListenAddr(),
		"store": cfg.StoreDriver,
		"tz":    cfg.Location.String(),
	}).Info("cyclenote listening")
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newServerApp(handler *api.Handler, requestLog io.Writer, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Cyclenote",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: requestLog}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "cyclenote_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next:           isJSONRequest,
	}
}

// isJSONRequest exempts JSON API calls from the form token check.
func isJSONRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func resolveSecretKey(cfg *config.Config, log *logrus.Logger) (string, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	weak := secret == "" || secret == insecureSecretKey || len(secret) < minSecretKeyLength
	if !weak {
		return secret, nil
	}
	if cfg.Environment == "production" {
		return "", errors.New("SECRET_KEY must be set to at least 32 random characters in production")
	}
	generated, err := security.NewSecretKey(generatedSecretKeyLength)
	if err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	log.Warn("SECRET_KEY is not set to a strong value; using a per-process key")
	return generated, nil
}

func openBrowserAfter(ctx context.Context, url string, delay time.Duration, log *logrus.Logger) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	if err := openURL(url); err != nil {
		log.WithError(err).WithField("url", url).Warn("open browser failed")
	}
}
