package grantmap_test

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap"
	"github.com/agentstation/grantmap/internal/store/memory"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

// staticSource serves a fixed list of programs.
type staticSource struct {
	id sources.ID
	ps []programs.Program
}

func (s staticSource) ID() sources.ID { return s.id }

func (s staticSource) Fetch(context.Context) sources.Result {
	return sources.Result{Source: s.id, Programs: s.ps, Pages: 1}
}

func Example() {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bizinfo := staticSource{id: sources.BizinfoID, ps: []programs.Program{{
		Source: "bizinfo", SourceID: "bizinfo-PBLN_1", Title: "2025년 청년 창업 지원사업 (1차)",
		StartDate: &start, Status: programs.StatusOpen,
	}}}
	kstartup := staticSource{id: sources.KStartupID, ps: []programs.Program{{
		Source: "kstartup", SourceID: "kstartup-174321", Title: "2025년 청년창업 지원사업(1차)",
		StartDate: &start, Status: programs.StatusOpen,
	}}}

	logger := zerolog.Nop()
	gm, err := grantmap.New(memory.New(),
		grantmap.WithSources(bizinfo, kstartup),
		grantmap.WithLogger(&logger),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	gm.OnProgramCreated(func(p programs.Program) {
		fmt.Println("created", p.SourceID)
	})

	report, err := gm.Ingest(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("fetched=%d kept=%d cross-source=%d stored=%d\n",
		report.Fetched, report.AfterDedupe, report.CrossSourceDuplicates, report.StoredTotal)

	// Output:
	// created bizinfo-PBLN_1
	// fetched=2 kept=1 cross-source=1 stored=1
}
