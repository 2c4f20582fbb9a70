package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/cmd/application"
	"github.com/agentstation/grantmap/internal/store/memory"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

type stubSource struct {
	id sources.ID
	ps []programs.Program
}

func (s stubSource) ID() sources.ID { return s.id }

func (s stubSource) Fetch(context.Context) sources.Result {
	return sources.Result{Source: s.id, Programs: s.ps, Pages: 1}
}

func sample() []programs.Program {
	return []programs.Program{
		{Source: "bizinfo", SourceID: "bizinfo-1", Title: "수출 바우처", Status: programs.StatusOpen},
		{Source: "bizinfo", SourceID: "bizinfo-2", Title: "스마트공장 구축", Status: programs.StatusClosed},
	}
}

func newApp(t *testing.T, st *memory.Store) *application.Mock {
	t.Helper()
	gm, err := grantmap.New(st, grantmap.WithSources(stubSource{id: sources.BizinfoID, ps: sample()}))
	require.NoError(t, err)
	return &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		GrantmapFunc:     func(context.Context) (grantmap.Grantmap, error) { return gm, nil },
	}
}

func run(t *testing.T, app application.Application, args ...string) (*grantmap.Report, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}
	var report grantmap.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	return &report, nil
}

func TestIngestStoresPrograms(t *testing.T) {
	st := memory.New()

	report, err := run(t, newApp(t, st))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 2, report.StoredTotal)
	assert.Equal(t, 2, st.Len())
}

func TestIngestDryRunWritesNothing(t *testing.T) {
	st := memory.New()

	report, err := run(t, newApp(t, st), "--dry-run")
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, st.Len())
}

func TestIngestSourceFilter(t *testing.T) {
	st := memory.New()

	report, err := run(t, newApp(t, st), "--source", "kstartup")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Fetched)
	assert.Equal(t, 0, st.Len())
}

func TestIngestGatewayFailureIsReturned(t *testing.T) {
	app := &application.Mock{
		GrantmapFunc: func(context.Context) (grantmap.Grantmap, error) {
			return nil, &errors.FatalError{Stage: "ping", Err: errors.New("connection refused")}
		},
	}

	_, err := run(t, app)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}
