// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package supervisor provides process supervision for Hybridrank using suture v4.

The tree has two layers so a failing housekeeping task cannot interrupt
request serving:

	RootSupervisor ("hybridrank")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (when the response cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's exponential backoff. Canceling
the context passed to Serve stops every service; anything still running
after TreeConfig.ShutdownTimeout shows up in UnstoppedServiceReport.

Supervisor events are logged through sutureslog, which needs a *slog.Logger.
Use logging.NewSlogLogger to route them into the zerolog output:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewCacheJanitorService(engine.Cache(), 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
