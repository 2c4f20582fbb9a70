// Package kstartup provides a client for the K-Startup (창업넷) announcement
// listing served through the data.go.kr odcloud gateway.
package kstartup

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/grantmap/internal/transport"
	"github.com/agentstation/grantmap/internal/utils/ptr"
	"github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/logging"
	"github.com/agentstation/grantmap/pkg/normalize"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/sources"
)

// Client implements sources.Source for K-Startup.
type Client struct {
	cfg       sources.Config
	transport *transport.Client
	logger    *zerolog.Logger
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrNop(l)
	}
}

// WithClock sets the clock status derivation uses.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient creates a K-Startup client. data.go.kr hands out keys in both
// an encoded and a decoded form; an encoded key is decoded here so the
// query string is not escaped twice.
func NewClient(cfg sources.Config, opts ...Option) *Client {
	cfg = cfg.WithDefaults()
	if strings.Contains(cfg.APIKey, "%") {
		if decoded, err := url.QueryUnescape(cfg.APIKey); err == nil {
			cfg.APIKey = decoded
		}
	}

	c := &Client{
		cfg:       cfg,
		transport: transport.New(string(sources.KStartupID)),
		logger:    &logging.Nop,
		now:       func() time.Time { return utc.Now().Time },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns sources.KStartupID.
func (c *Client) ID() sources.ID {
	return sources.KStartupID
}

// Fetch pages through the listing and converts every item it can identify.
func (c *Client) Fetch(ctx context.Context) sources.Result {
	result := sources.Result{Source: sources.KStartupID}
	log := c.logger.With().Str("source", string(sources.KStartupID)).Logger()

	if !c.cfg.Configured() {
		log.Warn().Msg("Source not configured, skipping")
		result.Message = errors.ErrNotConfigured.Error()
		return result
	}

	items, prog, err := sources.Paginate(ctx, c.cfg.PageSize, c.cfg.MaxPages, c.fetchPage)
	result.Pages = prog.Pages
	if err != nil {
		result.Fail(errors.WrapFetch(string(sources.KStartupID), prog.Pages+1, err))
		log.Error().Err(err).Int("page", prog.Pages+1).Int("items", len(items)).Msg("Fetch failed, keeping items already parsed")
	}
	if prog.Truncated {
		result.Truncate(prog.Pages)
		log.Warn().Int("max_pages", c.cfg.MaxPages).Msg("Page limit reached, listing truncated")
	}

	now := c.now()
	result.Programs = make([]programs.Program, 0, len(items))
	for i, item := range items {
		p, reason := convertToProgram(item, now)
		if reason != "" {
			result.Dropped++
			log.Warn().Int("index", i).Str("reason", reason).Msg("Dropped item")
			continue
		}
		result.Programs = append(result.Programs, p)
	}

	log.Info().
		Int("programs", len(result.Programs)).
		Int("dropped", result.Dropped).
		Int("pages", result.Pages).
		Bool("failed", result.Failed).
		Bool("truncated", result.Truncated).
		Msg("Fetched")
	return result
}

func (c *Client) fetchPage(ctx context.Context, page int) (sources.Page[Item], error) {
	query := url.Values{
		"serviceKey": {c.cfg.APIKey},
		"returnType": {"json"},
		"page":       {strconv.Itoa(page)},
		"perPage":    {strconv.Itoa(c.cfg.PageSize)},
	}

	var resp listResponse
	if err := c.transport.GetJSON(ctx, c.cfg.BaseURL, query, &resp); err != nil {
		return sources.Page[Item]{}, err
	}
	if resp.Data == nil {
		return sources.Page[Item]{}, &errors.ParseError{
			Format:  "json",
			Source:  string(sources.KStartupID),
			Message: "response has no data array",
			Err:     errors.ErrUnknownShape,
		}
	}

	total := 0
	if n := normalize.ParseCount(resp.TotalCount.String()); n != nil {
		total = int(*n)
	}
	return sources.Page[Item]{Items: *resp.Data, Total: total}, nil
}

// convertToProgram maps one item. A non-empty reason means the item was
// dropped.
func convertToProgram(item Item, now time.Time) (programs.Program, string) {
	value := func(f sources.Field) string {
		v, _ := Rules.Value(f, item)
		return v
	}

	title := normalize.Clean(value(sources.FieldTitle))
	if title == "" {
		return programs.Program{}, "missing title"
	}

	rawStart := value(sources.FieldStartDate)
	start := normalize.ParseDate(rawStart)
	end := normalize.ParseDate(value(sources.FieldEndDate))

	nativeID := value(sources.FieldID)
	if nativeID == "" {
		nativeID = normalize.SynthesizeID(title, rawStart)
	}
	if nativeID == "" {
		return programs.Program{}, "missing identity: no pbanc_sn and no title/start date to synthesize one"
	}

	status := programs.DeriveStatus(end, now)
	if status == programs.StatusOpen && strings.EqualFold(value(sources.FieldStatus), "N") {
		status = programs.StatusClosed
	}

	return programs.Program{
		Source:      string(sources.KStartupID),
		SourceID:    string(sources.KStartupID) + "-" + nativeID,
		Title:       title,
		Summary:     ptr.NonBlank(normalize.Clean(value(sources.FieldSummary))),
		Description: ptr.NonBlank(normalize.Clean(value(sources.FieldDescription))),
		Category:    ptr.NonBlank(value(sources.FieldCategory)),
		Region:      ptr.NonBlank(value(sources.FieldRegion)),
		Target:      ptr.NonBlank(normalize.Clean(value(sources.FieldTarget))),
		Method:      ptr.NonBlank(normalize.Clean(value(sources.FieldMethod))),
		Organizer:   ptr.NonBlank(value(sources.FieldOrganizer)),
		URL:         ptr.NonBlank(value(sources.FieldURL)),
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		AmountMin:   normalize.ParseCount(value(sources.FieldAmountMin)),
		AmountMax:   normalize.ParseCount(value(sources.FieldAmountMax)),
	}, ""
}
