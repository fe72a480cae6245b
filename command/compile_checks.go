package command

import (
	"github.com/goliatone/go-apps/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Commander[CreateAppMessage] = (*CreateAppCommand)(nil)
	_ gocmd.Commander[DeleteAppMessage] = (*DeleteAppCommand)(nil)

	_ AppLifecycle = (*core.Registry)(nil)
)
