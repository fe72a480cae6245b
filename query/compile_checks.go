package query

import (
	"github.com/goliatone/go-apps/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetAppMessage, *core.App]      = (*GetAppQuery)(nil)
	_ gocmd.Querier[ListAppsMessage, []AppSummary] = (*ListAppsQuery)(nil)

	_ AppReader = (*core.Registry)(nil)
)
