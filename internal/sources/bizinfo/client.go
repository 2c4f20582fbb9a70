// Package bizinfo provides a client for the 기업마당 (bizinfo.go.kr) support
// program listing API.
package bizinfo

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

// SiteURL is the base relative announcement links resolve against.
const SiteURL = "https://www.bizinfo.go.kr"

// Client implements sources.Source for bizinfo.
type Client struct {
	cfg       sources.Config
	viewsURL  string
	siteURL   string
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

// WithViewsURL enables view-count enrichment from a secondary listing.
func WithViewsURL(u string) Option {
	return func(c *Client) {
		c.viewsURL = u
	}
}

// WithSiteURL overrides the base for relative announcement links.
func WithSiteURL(u string) Option {
	return func(c *Client) {
		c.siteURL = u
	}
}

// NewClient creates a bizinfo client.
func NewClient(cfg sources.Config, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg.WithDefaults(),
		siteURL:   SiteURL,
		transport: transport.New(string(sources.BizinfoID)),
		logger:    &logging.Nop,
		now:       func() time.Time { return utc.Now().Time },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns sources.BizinfoID.
func (c *Client) ID() sources.ID {
	return sources.BizinfoID
}

// Fetch pages through the listing and converts every item it can identify.
func (c *Client) Fetch(ctx context.Context) sources.Result {
	result := sources.Result{Source: sources.BizinfoID}
	log := c.logger.With().Str("source", string(sources.BizinfoID)).Logger()

	if !c.cfg.Configured() {
		log.Warn().Msg("Source not configured, skipping")
		result.Message = errors.ErrNotConfigured.Error()
		return result
	}

	items, prog, err := sources.Paginate(ctx, c.cfg.PageSize, c.cfg.MaxPages, c.fetchPage)
	result.Pages = prog.Pages
	if err != nil {
		result.Fail(errors.WrapFetch(string(sources.BizinfoID), prog.Pages+1, err))
		log.Error().Err(err).Int("page", prog.Pages+1).Int("items", len(items)).Msg("Fetch failed, keeping items already parsed")
	}
	if prog.Truncated {
		result.Truncate(prog.Pages)
		log.Warn().Int("max_pages", c.cfg.MaxPages).Msg("Page limit reached, listing truncated")
	}

	views := c.fetchViews(ctx, &log)
	now := c.now()

	result.Programs = make([]programs.Program, 0, len(items))
	for i, item := range items {
		p, reason := c.convertToProgram(item, views, now)
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

func (c *Client) query(page int) url.Values {
	return url.Values{
		"crtfcKey":  {c.cfg.APIKey},
		"dataType":  {"json"},
		"pageUnit":  {strconv.Itoa(c.cfg.PageSize)},
		"pageIndex": {strconv.Itoa(page)},
	}
}

func (c *Client) fetchPage(ctx context.Context, page int) (sources.Page[Item], error) {
	var resp listResponse
	if err := c.transport.GetJSON(ctx, c.cfg.BaseURL, c.query(page), &resp); err != nil {
		return sources.Page[Item]{}, err
	}
	if resp.JSONArray == nil {
		return sources.Page[Item]{}, &errors.ParseError{
			Format:  "json",
			Source:  string(sources.BizinfoID),
			Message: "response has no jsonArray",
			Err:     errors.ErrUnknownShape,
		}
	}
	return sources.Page[Item]{Items: *resp.JSONArray}, nil
}

// fetchViews loads pblancId → inqireCo from the secondary listing. Failures
// are logged and leave every view count unset.
func (c *Client) fetchViews(ctx context.Context, log *zerolog.Logger) map[string]int64 {
	if c.viewsURL == "" {
		return nil
	}

	var resp listResponse
	if err := c.transport.GetJSON(ctx, c.viewsURL, c.query(1), &resp); err != nil {
		log.Warn().Err(err).Msg("View count enrichment failed")
		return nil
	}
	if resp.JSONArray == nil {
		log.Warn().Msg("View count listing has no jsonArray")
		return nil
	}

	views := make(map[string]int64, len(*resp.JSONArray))
	for _, item := range *resp.JSONArray {
		id := strings.TrimSpace(item.PblancID.String())
		if n := normalize.ParseCount(item.InqireCo.String()); id != "" && n != nil {
			views[id] = *n
		}
	}
	log.Debug().Int("entries", len(views)).Msg("Loaded view counts")
	return views
}

// convertToProgram maps one item. A non-empty reason means the item was
// dropped.
func (c *Client) convertToProgram(item Item, views map[string]int64, now time.Time) (programs.Program, string) {
	value := func(f sources.Field) string {
		v, _ := Rules.Value(f, item)
		return v
	}

	title := normalize.Clean(value(sources.FieldTitle))
	if title == "" {
		return programs.Program{}, "missing title"
	}

	period := normalize.ParseDateRange(value(sources.FieldPeriod))
	if period.Start == nil && period.End == nil {
		rawStart := value(sources.FieldStartDate)
		period = normalize.DateRange{
			Start:    normalize.ParseDate(rawStart),
			End:      normalize.ParseDate(value(sources.FieldEndDate)),
			RawStart: rawStart,
		}
	}

	nativeID := value(sources.FieldID)
	if nativeID == "" {
		nativeID = normalize.SynthesizeID(title, period.RawStart)
	}
	if nativeID == "" {
		return programs.Program{}, "missing identity: no pblancId and no title/start date to synthesize one"
	}

	p := programs.Program{
		Source:      string(sources.BizinfoID),
		SourceID:    string(sources.BizinfoID) + "-" + nativeID,
		Title:       title,
		Summary:     ptr.NonBlank(normalize.Clean(value(sources.FieldSummary))),
		Description: ptr.NonBlank(normalize.Clean(value(sources.FieldDescription))),
		Category:    ptr.NonBlank(value(sources.FieldCategory)),
		Region:      ptr.NonBlank(value(sources.FieldRegion)),
		Target:      ptr.NonBlank(normalize.Clean(value(sources.FieldTarget))),
		Method:      ptr.NonBlank(normalize.Clean(value(sources.FieldMethod))),
		Organizer:   ptr.NonBlank(value(sources.FieldOrganizer)),
		URL:         ptr.NonBlank(c.resolveURL(value(sources.FieldURL))),
		StartDate:   period.Start,
		EndDate:     period.End,
		Status:      programs.DeriveStatus(period.End, now),
		AmountMin:   normalize.ParseCount(value(sources.FieldAmountMin)),
		AmountMax:   normalize.ParseCount(value(sources.FieldAmountMax)),
		ViewCount:   normalize.ParseCount(value(sources.FieldViewCount)),
	}
	if p.ViewCount == nil {
		if n, ok := views[nativeID]; ok {
			p.ViewCount = ptr.To(n)
		}
	}
	return p, ""
}

// resolveURL turns site-relative links into absolute ones.
func (c *Client) resolveURL(raw string) string {
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if ref.IsAbs() {
		return ref.String()
	}
	base, err := url.Parse(c.siteURL)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
