// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"net/http"

	"github.com/poskit/poskit/lib/api"
	"github.com/poskit/poskit/lib/config"
	"github.com/poskit/poskit/lib/session"
)

// environment is the shared wiring every command starts from: the
// resolved config, the api client, and the session store restored
// from disk.
//
// The client and the store reference each other (the client reads the
// bearer token from the store; the store calls the client's login and
// select-company endpoints), so the client is built first with
// late-bound hooks into the environment.
type environment struct {
	config   *config.Config
	client   *api.Client
	sessions *session.Store

	// loading is installed by the console command once the UI model
	// exists; until then loader transitions are dropped.
	loading func(active int)
}

// setup resolves the config (flag value beats POSKIT_CONFIG), builds
// the api client, and restores the persisted session.
func setup(configFlag string) (*environment, error) {
	path, err := config.Resolve(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	env := &environment{config: cfg}
	env.client = api.New(api.Options{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout.Std()},
		TokenSource: func() string {
			if env.sessions == nil {
				return ""
			}
			return env.sessions.Token()
		},
		OnUnauthorized: func() {
			if env.sessions != nil {
				env.sessions.HandleUnauthorized()
			}
		},
		OnLoading: func(active int) {
			if env.loading != nil {
				env.loading(active)
			}
		},
	})

	env.sessions = session.NewStore(env.client, session.FilePath())
	if err := env.sessions.Load(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return env, nil
}
