package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

type stubSource struct {
	id     sources.ID
	result sources.Result
}

func (s stubSource) ID() sources.ID { return s.id }

func (s stubSource) Fetch(context.Context) sources.Result { return s.result }

func views(n int64) *int64 { return &n }

func mockApp(result sources.Result) *application.Mock {
	return &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		SourceConfigFunc: func(sources.ID) sources.Config {
			return sources.Config{BaseURL: "https://api.example", APIKey: "key"}
		},
		SourcesFunc: func(ids ...sources.ID) ([]sources.Source, error) {
			return []sources.Source{stubSource{id: ids[0], result: result}}, nil
		},
	}
}

func run(t *testing.T, app application.Application, args ...string) ([]programs.Program, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}
	var ps []programs.Program
	require.NoError(t, json.Unmarshal(out.Bytes(), &ps))
	return ps, nil
}

func TestFetchSortsByViewsAndLimits(t *testing.T) {
	app := mockApp(sources.Result{
		Source: sources.BizinfoID,
		Programs: []programs.Program{
			{SourceID: "bizinfo-a", Title: "A", ViewCount: views(5)},
			{SourceID: "bizinfo-b", Title: "B"},
			{SourceID: "bizinfo-c", Title: "C", ViewCount: views(50)},
		},
	})

	ps, err := run(t, app, "bizinfo", "--limit", "2")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "bizinfo-c", ps[0].SourceID)
	assert.Equal(t, "bizinfo-a", ps[1].SourceID)
}

func TestFetchShowsPartialResults(t *testing.T) {
	result := sources.Result{
		Source:   sources.KStartupID,
		Programs: []programs.Program{{SourceID: "kstartup-1", Title: "A"}},
	}
	result.Fail(errors.New("page 2 failed"))

	ps, err := run(t, mockApp(result), "kstartup")
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestFetchFailsWhenNothingParsed(t *testing.T) {
	result := sources.Result{Source: sources.KStartupID}
	result.Fail(errors.NewAPIError("kstartup", 503, "unavailable"))

	_, err := run(t, mockApp(result), "kstartup")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestFetchNotConfigured(t *testing.T) {
	app := &application.Mock{}

	_, err := run(t, app, "bizinfo")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotConfigured)
	assert.Contains(t, err.Error(), "BIZINFO_API_URL")
}

func TestFetchRequiresSource(t *testing.T) {
	_, err := run(t, &application.Mock{})
	assert.Error(t, err)
}
