package scoutfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/team"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
	"github.com/veller/retrofoot-sub002/internal/platform/resilience"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

const defaultTimeout = 10 * time.Second

var bearerTokenRegex = regexp.MustCompile(`Bearer\s+[^\s"']+`)
var errScoutFeedTransient = crerr.New("scoutfeed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls team and squad data from the scouting feed. Responses
// are treated as authoritative replacements for the bundled seed data.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type squadMemberDTO struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Position       string  `json:"position"`
	Aggression     int     `json:"aggression"`
	Composure      int     `json:"composure"`
	Stamina        int     `json:"stamina"`
	Technical      int     `json:"technical"`
	Finishing      int     `json:"finishing"`
	Defending      int     `json:"defending"`
	BaselineEnergy float64 `json:"baseline_energy"`
}

type teamDTO struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Short string           `json:"short"`
	Squad []squadMemberDTO `json:"squad"`
}

type teamsEnvelope struct {
	Data []teamDTO `json:"data"`
}

// FetchTeams returns every team on the feed together with its full
// squad. Squad members that fail domain validation are skipped with a
// warning rather than poisoning the whole load.
func (c *Client) FetchTeams(ctx context.Context) ([]team.Team, []player.Player, error) {
	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/v1/teams", &envelope); err != nil {
		return nil, nil, fmt.Errorf("fetch teams: %w", err)
	}

	teams := make([]team.Team, 0, len(envelope.Data))
	players := make([]player.Player, 0, len(envelope.Data)*18)
	for _, dto := range envelope.Data {
		t := team.Team{ID: strings.TrimSpace(dto.ID), Name: strings.TrimSpace(dto.Name), Short: dto.Short}
		if err := t.Validate(); err != nil {
			c.logger.WarnContext(ctx, "scoutfeed team skipped", "team_id", dto.ID, "error", err)
			continue
		}
		teams = append(teams, t)

		for _, member := range dto.Squad {
			p := player.Player{
				ID:        strings.TrimSpace(member.ID),
				TeamID:    t.ID,
				FirstName: member.FirstName,
				LastName:  member.LastName,
				Position:  player.Position(strings.ToUpper(strings.TrimSpace(member.Position))),
				Attributes: player.Attributes{
					Aggression: member.Aggression,
					Composure:  member.Composure,
					Stamina:    member.Stamina,
					Technical:  member.Technical,
					Finishing:  member.Finishing,
					Defending:  member.Defending,
				},
				BaselineEnergy: member.BaselineEnergy,
			}
			if err := p.Validate(); err != nil {
				c.logger.WarnContext(ctx, "scoutfeed player skipped",
					"team_id", t.ID, "player_id", member.ID, "error", err)
				continue
			}
			players = append(players, p)
		}
	}

	return teams, players, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: scoutfeed base url is not configured", usecase.ErrDependencyUnavailable)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "scoutfeed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: scouting feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScoutFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errScoutFeedTransient, "send request: %s", c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errScoutFeedTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errScoutFeedTransient, "feed status=%d", resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "scoutfeed request failed",
		"url", fullURL,
		"curl", buildCurlPreview(fullURL),
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.token != "" {
		value = strings.ReplaceAll(value, c.token, "REDACTED")
	}
	return bearerTokenRegex.ReplaceAllString(value, "Bearer REDACTED")
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// buildCurlPreview renders a reproducible request for debugging failed
// feed calls. The token is always masked.
func buildCurlPreview(fullURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart(shellQuote(fullURL))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	appendPart("-H")
	appendPart(shellQuote("accept: application/json"))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

// ValidateBaseURL rejects URLs the client cannot call before any
// request is made.
func ValidateBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("base url is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}
