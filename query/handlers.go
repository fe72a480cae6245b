package query

import (
	"context"

	"github.com/goliatone/go-apps/core"
)

type AppReader interface {
	Get(ctx context.Context, name string) (*core.App, error)
	Default(ctx context.Context) (*core.App, error)
	List(ctx context.Context) []*core.App
}

// AppSummary is the read model returned by ListAppsQuery.
type AppSummary struct {
	Name           string   `json:"name"`
	ID             string   `json:"id"`
	ProjectID      string   `json:"project_id,omitempty"`
	CredentialKind string   `json:"credential_kind"`
	Services       []string `json:"services,omitempty"`
}

func Summarize(app *core.App) AppSummary {
	if app == nil {
		return AppSummary{}
	}
	summary := AppSummary{
		Name:      app.Name(),
		ID:        app.ID(),
		ProjectID: app.ProjectID(),
		Services:  app.ServiceKeys(),
	}
	if cred := app.Credential(); cred != nil {
		summary.CredentialKind = cred.Kind()
	}
	return summary
}

type GetAppQuery struct {
	reader AppReader
}

func NewGetAppQuery(reader AppReader) *GetAppQuery {
	return &GetAppQuery{reader: reader}
}

// Ready reports whether the query has an app reader to work with.
func (q *GetAppQuery) Ready() error {
	if q == nil || q.reader == nil {
		return queryDependencyError("query: app reader is required")
	}
	return nil
}

func (q *GetAppQuery) Query(ctx context.Context, msg GetAppMessage) (*core.App, error) {
	if err := q.Ready(); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if msg.Name == "" {
		return q.reader.Default(ctx)
	}
	return q.reader.Get(ctx, msg.Name)
}

type ListAppsQuery struct {
	reader AppReader
}

func NewListAppsQuery(reader AppReader) *ListAppsQuery {
	return &ListAppsQuery{reader: reader}
}

func (q *ListAppsQuery) Ready() error {
	if q == nil || q.reader == nil {
		return queryDependencyError("query: app reader is required")
	}
	return nil
}

func (q *ListAppsQuery) Query(ctx context.Context, _ ListAppsMessage) ([]AppSummary, error) {
	if err := q.Ready(); err != nil {
		return nil, err
	}
	apps := q.reader.List(ctx)
	out := make([]AppSummary, 0, len(apps))
	for _, app := range apps {
		out = append(out, Summarize(app))
	}
	return out, nil
}
