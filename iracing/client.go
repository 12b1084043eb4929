package iracing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"iracing-bot/model"
	"iracing-bot/utils"
)

const (
	defaultBaseURL = "https://members-ng.iracing.com"
	authCookieName = "irsso_membersitev2"

	// Per-call budget. The members API is slow but a call must never hang
	// the update cycle.
	requestTimeout = 30 * time.Second
)

// Client talks to the iRacing Data API. The service is rate-sensitive and
// does not tolerate concurrent use of one session, so every call is
// serialized behind a single mutex: at most one request is in flight at a
// time across the whole process.
//
// All lookups degrade to ok=false on any transport or API failure; callers
// treat missing data as a skippable condition.
type Client struct {
	email    string
	password string
	baseURL  string
	http     *http.Client

	mu         sync.Mutex
	authCookie string
}

// New creates a client for the members API using the shared pooled HTTP
// client. Authentication happens lazily on the first call.
func New(email, password string) *Client {
	return &Client{
		email:    email,
		password: password,
		baseURL:  defaultBaseURL,
		http:     utils.SharedHTTPClient,
	}
}

// ResolveMember looks up a customer id by display name. If several drivers
// match the search term, an exact case-insensitive name match wins;
// otherwise the first candidate is used.
func (c *Client) ResolveMember(ctx context.Context, displayName string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var results []model.DriverSearchResult
	params := url.Values{"search_term": {displayName}}
	if err := c.get(ctx, "/data/lookup/drivers", params, &results); err != nil {
		log.Printf("Error searching for member %s: %v", displayName, err)
		return 0, false
	}
	if len(results) == 0 {
		return 0, false
	}

	for _, member := range results {
		if strings.EqualFold(member.DisplayName, displayName) {
			return member.CustID, true
		}
	}
	return results[0].CustID, true
}

// MemberSummary fetches the stats bundle for a customer id.
func (c *Client) MemberSummary(ctx context.Context, custID int) (*model.MemberSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var summary model.MemberSummary
	params := url.Values{"cust_id": {strconv.Itoa(custID)}}
	if err := c.get(ctx, "/data/stats/member_summary", params, &summary); err != nil {
		log.Printf("Error fetching member summary for %d: %v", custID, err)
		return nil, false
	}
	return &summary, true
}

// RecentRaces fetches a member's recent race history.
func (c *Client) RecentRaces(ctx context.Context, custID int) ([]model.RecentRace, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var races []model.RecentRace
	params := url.Values{"cust_id": {strconv.Itoa(custID)}}
	if err := c.get(ctx, "/data/stats/member_recent_races", params, &races); err != nil {
		log.Printf("Error fetching recent races for %d: %v", custID, err)
		return nil, false
	}
	return races, true
}

// get performs an authenticated GET. On a 401 the cached session cookie is
// dropped and the request retried once with a fresh login. Callers must
// hold c.mu.
func (c *Client) get(ctx context.Context, path string, params url.Values, v interface{}) error {
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.ensureAuthenticated(ctx); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		status, body, err := c.doGet(ctx, path, params)
		cancel()
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			c.authCookie = ""
			continue
		}
		if status != http.StatusOK {
			return fmt.Errorf("unexpected status %d from %s", status, path)
		}
		return json.Unmarshal(body, v)
	}
	return fmt.Errorf("authentication rejected for %s", path)
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Cookie", c.authCookie)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (c *Client) ensureAuthenticated(ctx context.Context) error {
	if c.authCookie != "" {
		return nil
	}
	if c.email == "" || c.password == "" {
		return fmt.Errorf("iRacing credentials not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("iRacing login failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("iRacing login failed with status %d", resp.StatusCode)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == authCookieName {
			c.authCookie = cookie.Name + "=" + cookie.Value
			return nil
		}
	}
	return fmt.Errorf("iRacing login did not return a session cookie")
}
