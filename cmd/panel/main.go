// The admin panel runtime. Connects the entity stores to the blog API,
// performs the initial fetches and logs list updates and alerts until
// interrupted.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/yamacbayin/blog-admin-panel/internal/infrastructure/apiclient"
	"github.com/yamacbayin/blog-admin-panel/internal/infrastructure/config"
	"github.com/yamacbayin/blog-admin-panel/internal/panel"
	"github.com/yamacbayin/blog-admin-panel/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		startupLog := logger.For("startup")
		startupLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Service: "panel",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	backend, err := apiclient.New(cfg.Panel.APIBaseURL, cfg.Panel.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("build api client")
	}

	p := panel.New(ctx, backend, logger.For("panel"))
	defer p.Close()

	alerts, unsubAlerts := p.Alerts.Subscribe()
	defer unsubAlerts()
	go func() {
		for a := range alerts {
			log.Info().Str("kind", string(a.Kind)).Str("message", a.Message).Msg("alert")
		}
	}()

	users, unsubUsers := p.Users.List()
	defer unsubUsers()
	categories, unsubCategories := p.Categories.List()
	defer unsubCategories()
	posts, unsubPosts := p.Posts.List()
	defer unsubPosts()
	comments, unsubComments := p.Comments.List()
	defer unsubComments()

	go func() {
		for {
			select {
			case l := <-users:
				log.Info().Int("count", len(l)).Msg("users list updated")
			case l := <-categories:
				log.Info().Int("count", len(l)).Msg("categories list updated")
			case l := <-posts:
				log.Info().Int("count", len(l)).Msg("posts list updated")
			case l := <-comments:
				log.Info().Int("count", len(l)).Msg("comments list updated")
			case <-ctx.Done():
				return
			}
		}
	}()

	p.Start(ctx)
	log.Info().Str("api", cfg.Panel.APIBaseURL).Msg("panel running")

	<-ctx.Done()
	log.Info().Msg("panel stopped")
}
