package main

import (
	"github.com/statusx-lab/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	server.loadConfig(cctx)
	server.loadLogger()
	server.loadDatabase()

	return migration.Migrate(s.ctx)
}
