// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

/*
Package supervisor runs the long-lived parts of the recipe server under
suture v4.

# Tree

	RootSupervisor ("recipehelper")
	├── DataSupervisor ("data-layer")
	│   └── CacheGCService (when the details cache is enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   └── events.Consumer (favorite saved/deleted)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A consumer crash is restarted inside the messaging layer and never touches
the HTTP server. Supervisor events are logged through sutureslog, which
writes to the application's zerolog output via logging.NewComponentSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
	tree.AddMessagingService(events.NewConsumer(bus, events.FavoritesGaugeHandler(svc)))

	errCh := tree.ServeBackground(ctx)
	<-errCh

# Return values

  - ctx.Err(): shutdown requested
  - suture.ErrDoNotRestart: the service cannot run again (closed server or cache)
  - any other error: crash, restarted with backoff

DuckDB is not supervised. It is an embedded library whose connections are
owned by the database package.

If services don't stop within ShutdownTimeout, UnstoppedServiceReport lists
them.
*/
package supervisor
