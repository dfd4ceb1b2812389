// @title                      University Portal API
// @version                    1.0
// @description                Accounts, courses, enrollment, events, news and newsletter for the university portal.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/api"
	"github.com/unihub/portal/internal/api/handler"
	"github.com/unihub/portal/internal/core/ports"
	"github.com/unihub/portal/internal/core/security"
	"github.com/unihub/portal/internal/core/service"
	"github.com/unihub/portal/internal/infrastructure/config"
	"github.com/unihub/portal/internal/infrastructure/db/memory"
	mongodb "github.com/unihub/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/unihub/portal/internal/infrastructure/db/redis"
	"github.com/unihub/portal/internal/infrastructure/mail"
	"github.com/unihub/portal/internal/infrastructure/queue"
	"github.com/unihub/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	accounts ports.AccountRepository
	courses  ports.CourseRepository
	events   ports.EventRepository
	news     ports.NewsRepository
	dedup    ports.DeliveryDedup
	checks   []handler.DependencyCheck
	closers  []func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portal",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to open stores")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, c := range st.closers {
			if err := c(closeCtx); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
		}
	}()

	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, newMailer(cfg, log), logger.Component("mail"))
	dispatcher.Start(ctx)

	codec := security.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resolver := security.NewPrincipalResolver(codec, st.accounts)
	svcLog := logger.Component("service")

	e := api.NewRouter(api.Services{
		Auth:       service.NewAuthService(st.accounts, resolver, codec, svcLog),
		Accounts:   service.NewAccountService(st.accounts, svcLog),
		Courses:    service.NewCourseService(st.courses, st.accounts, svcLog),
		Enrollment: service.NewEnrollmentService(st.courses, st.accounts, dispatcher, svcLog),
		Events:     service.NewEventService(st.events, st.accounts, svcLog),
		News:       service.NewNewsService(st.news, svcLog),
		Newsletter: service.NewNewsletterService(st.accounts, dispatcher, st.dedup, svcLog),
	}, api.Options{
		Resolver:  resolver,
		Readiness: st.checks,
		Log:       logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Str("mail", cfg.Mail.Driver).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &stores{
			accounts: memory.NewAccountRepository(),
			courses:  memory.NewCourseRepository(),
			events:   memory.NewEventRepository(),
			news:     memory.NewNewsRepository(),
			dedup:    memory.NewDeliveryDedup(cfg.Newsletter.DedupTTL),
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &stores{
		accounts: mongodb.NewAccountRepository(db),
		courses:  mongodb.NewCourseRepository(db),
		events:   mongodb.NewEventRepository(db),
		news:     mongodb.NewNewsRepository(db),
		dedup:    redisdb.NewDeliveryDedup(rdb, cfg.Newsletter.DedupTTL),
		checks: []handler.DependencyCheck{
			{Name: "mongo", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			{Name: "redis", Ping: redisdb.Ping(rdb)},
		},
		closers: []func(context.Context) error{
			client.Disconnect,
			func(context.Context) error { return rdb.Close() },
		},
	}, nil
}

func newMailer(cfg *config.Config, log zerolog.Logger) ports.Mailer {
	if cfg.Mail.Driver == config.MailSMTP {
		return mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}
	log.Info().Msg("mail driver is log; messages are not sent")
	return mail.NewLogMailer(logger.Component("mail"))
}
