package promptsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/backend"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/promptsearch/internal/usecase/health"
	promptuc "github.com/kailas-cloud/promptsearch/internal/usecase/prompt"
	searchuc "github.com/kailas-cloud/promptsearch/internal/usecase/search"
)

// Client is the promptsearch SDK entry point.
type Client struct {
	backend   *backend.Backend
	searchSvc *searchuc.Service
	promptSvc *promptuc.Service
	healthSvc *healthuc.Service
	obs       *observer
}

// New opens the configured store and builds the search pipeline.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, o := range opts {
		o.apply(cc)
	}
	if cc.driver == "" {
		return nil, errors.New("promptsearch: store required (use WithValkey, WithRedis, WithSQLite or WithMemory)")
	}

	cfg, err := cc.toConfig()
	if err != nil {
		return nil, fmt.Errorf("promptsearch: %w", err)
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	b, err := backend.Open(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("promptsearch: %w", err)
	}

	searchSvc, err := backend.NewSearch(b, cfg.Search)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("promptsearch: %w", err)
	}

	return &Client{
		backend:   b,
		searchSvc: searchSvc,
		promptSvc: promptuc.New(b.Records),
		healthSvc: healthuc.New(b.DB, b.Index),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.backend != nil {
		c.backend.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.backend.DB.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Search ranks the prompts visible to requesterID against query.
// An empty requesterID searches public prompts only. limit 0 selects the
// default; other values are clamped into [1, max].
func (c *Client) Search(ctx context.Context, requesterID, query string, limit int) (resp Response, err error) {
	start := time.Now()
	defer func() {
		c.obs.observeSearch(start, len(query), requesterID != "", resp.Total, err)
	}()

	r, err := c.searchSvc.Search(ctx, requesterID, query, limit)
	if err != nil {
		return Response{}, err
	}
	return fromResponse(&r), nil
}

// Put validates and stores prompts, all or nothing on validation.
// Returns the stored ids in input order.
func (c *Client) Put(ctx context.Context, prompts ...Prompt) (ids []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("put", start, err) }()

	inputs := make([]promptuc.Input, len(prompts))
	for i := range prompts {
		inputs[i] = toInput(&prompts[i])
	}
	records, err := c.promptSvc.Import(ctx, inputs)
	if err != nil {
		return nil, err
	}

	ids = make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID()
	}
	return ids, nil
}

// Get returns a stored prompt by id. Visibility is not checked.
func (c *Client) Get(ctx context.Context, id string) (p Prompt, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	rec, err := c.promptSvc.Get(ctx, id)
	if err != nil {
		return Prompt{}, err
	}
	return fromRecord(&rec), nil
}

// Delete removes a stored prompt. Deleting a missing id is not an error.
func (c *Client) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	return c.promptSvc.Delete(ctx, id)
}

func toInput(p *Prompt) promptuc.Input {
	var createdAt int64
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt.UnixMilli()
	}
	return promptuc.Input{
		ID:      p.ID,
		OwnerID: p.UserID,
		Fields: domprompt.Fields{
			Title:       p.Title,
			Description: p.Description,
			Body:        p.Text,
			Category:    p.Category,
			Tags:        p.Tags,
		},
		Private:   p.IsPrivate,
		CreatedAt: createdAt,
	}
}

func fromRecord(r *domprompt.Record) Prompt {
	var createdAt time.Time
	if ms := r.CreatedAt(); ms != 0 {
		createdAt = time.UnixMilli(ms).UTC()
	}
	return Prompt{
		ID:          r.ID(),
		UserID:      r.OwnerID(),
		Title:       r.Title(),
		Description: r.Description(),
		Text:        r.Body(),
		Category:    r.Category(),
		Tags:        append([]string{}, r.Tags()...),
		IsPrivate:   r.IsPrivate(),
		CreatedAt:   createdAt,
	}
}

func fromResponse(r *result.Response) Response {
	out := Response{
		Results:  make([]Result, len(r.Results)),
		Total:    r.Total(),
		Duration: r.Duration,
		Message:  r.Message,
	}
	for i := range r.Results {
		res := &r.Results[i]
		rec := res.Record()
		out.Results[i] = Result{
			Prompt:        fromRecord(&rec),
			Score:         res.Score(),
			FieldsMatched: res.MatchedFields().Strings(),
			IsExactMatch:  res.IsExactMatch(),
		}
	}
	return out
}
