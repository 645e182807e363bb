package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/command"
	"github.com/maraki-learning/adminctl/internal/config"
	"github.com/maraki-learning/adminctl/internal/credstore"
	"github.com/maraki-learning/adminctl/internal/logger"
	"github.com/maraki-learning/adminctl/internal/monitor"
	"github.com/maraki-learning/adminctl/internal/session"
	"github.com/maraki-learning/adminctl/internal/store"
	"github.com/maraki-learning/adminctl/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Assemble Session and HTTP Pipeline ────────────────────────────
	// The client needs the session for tokens, the session needs the
	// client for requests; the late-bound closure breaks the cycle.
	var sess *session.Session

	client := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout, func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	}, log)

	creds := credstore.New(cfg.CredentialsFile)
	sess = session.New(api.NewAuthClient(client), creds, cfg.ValidateTimeout, log)
	client.SetUnauthorizedHook(sess.ForceLogout)

	// ─── Initialize Stores ─────────────────────────────────────────────
	app := &command.App{
		Config:    cfg,
		Log:       log,
		Session:   sess,
		Boot:      session.NewBootstrapper(sess, log),
		Users:     store.NewUsersStore(api.NewUsersClient(client), log),
		Quizzes:   store.NewQuizzesStore(api.NewQuizzesClient(client), log),
		Materials: store.NewMaterialsStore(api.NewMaterialsClient(client), log),
		Monitor:   monitor.New(cfg.APIBaseURL, sess.Token, log),
		Health:    api.NewHealthClient(client),
	}

	// ─── Run Command Tree ──────────────────────────────────────────────
	root := command.NewRootCmd(app)
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Debug().Err(err).Msg("Command failed")
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
