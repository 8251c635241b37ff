package bluesky

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/errors"
	"github.com/compmotifs/likeminds/pkg/logger"
	"go.uber.org/fx"
)

const (
	// PageCap is the server's maximum page size for paged endpoints.
	PageCap = 100
	// DetailBatchCap is the server's maximum URIs per getPosts call.
	DetailBatchCap = 25
)

// Client is a minimal AT Protocol read client. Repo listings go to the
// account's own PDS; everything else goes through the public AppView.
type Client struct {
	appViewURL string
	httpClient *http.Client
	logger     logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *Client {
	return &Client{
		appViewURL: strings.TrimRight(opts.Config.Bluesky.AppViewURL, "/"),
		httpClient: &http.Client{Timeout: opts.Config.Bluesky.RequestTimeout},
		logger:     opts.Logger.WithComponent("BlueskyClient"),
	}
}

// RepoRecord is one entry of a com.atproto.repo.listRecords page. Value is
// left raw; callers decode the collection-specific shape they expect.
type RepoRecord struct {
	URI   string          `json:"uri"`
	CID   string          `json:"cid"`
	Value json.RawMessage `json:"value"`
}

// LikeValue is the decoded value of an app.bsky.feed.like record.
type LikeValue struct {
	CreatedAt string `json:"createdAt"`
	Subject   struct {
		URI string `json:"uri"`
	} `json:"subject"`
}

// PostView is the enriched detail shape returned by app.bsky.feed.getPosts.
type PostView struct {
	URI    string `json:"uri"`
	Author struct {
		DID         string `json:"did"`
		Handle      string `json:"handle"`
		DisplayName string `json:"displayName"`
	} `json:"author"`
	Record struct {
		Text string `json:"text"`
	} `json:"record"`
	RepostCount int `json:"repostCount"`
	LikeCount   int `json:"likeCount"`
	ReplyCount  int `json:"replyCount"`
}

// Actor is a profile reference as it appears on likes and follows.
type Actor struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

// ListRecords fetches one page of an account repo's collection from its PDS.
// It returns the page's records and the continuation cursor, empty when the
// server has no more pages.
func (c *Client) ListRecords(ctx context.Context, pdsURL, repo, collection string, limit int, cursor string) ([]RepoRecord, string, error) {
	params := url.Values{}
	params.Set("repo", repo)
	params.Set("collection", collection)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var out struct {
		Records []RepoRecord `json:"records"`
		Cursor  string       `json:"cursor"`
	}
	endpoint := strings.TrimRight(pdsURL, "/") + "/xrpc/com.atproto.repo.listRecords?" + params.Encode()
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, "", err
	}
	return out.Records, out.Cursor, nil
}

// GetPosts fetches enriched detail for the given post URIs, chunking
// requests to the server's cap and concatenating results. Any chunk error
// fails the whole call.
func (c *Client) GetPosts(ctx context.Context, uris []string) ([]PostView, error) {
	if len(uris) == 0 {
		return nil, nil
	}

	var posts []PostView
	for start := 0; start < len(uris); start += DetailBatchCap {
		end := min(start+DetailBatchCap, len(uris))

		params := url.Values{}
		for _, uri := range uris[start:end] {
			params.Add("uris", uri)
		}

		var out struct {
			Posts []PostView `json:"posts"`
		}
		endpoint := c.appViewURL + "/xrpc/app.bsky.feed.getPosts?" + params.Encode()
		if err := c.getJSON(ctx, endpoint, &out); err != nil {
			return nil, err
		}
		posts = append(posts, out.Posts...)
	}
	return posts, nil
}

// GetPostCID fetches the post once and returns its content-hash stamp,
// which the likes endpoint requires.
func (c *Client) GetPostCID(ctx context.Context, uri string) (string, error) {
	params := url.Values{}
	params.Set("uri", uri)
	params.Set("depth", "0")

	var out struct {
		Thread struct {
			Post struct {
				CID string `json:"cid"`
			} `json:"post"`
		} `json:"thread"`
	}
	endpoint := c.appViewURL + "/xrpc/app.bsky.feed.getPostThread?" + params.Encode()
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return "", err
	}
	if out.Thread.Post.CID == "" {
		return "", errors.Wrap(errors.ErrNotFound, fmt.Sprintf("post %s has no CID", uri))
	}
	return out.Thread.Post.CID, nil
}

// GetLikes fetches one page of accounts that liked the given post.
func (c *Client) GetLikes(ctx context.Context, uri, cid string, limit int, cursor string) ([]Actor, string, error) {
	params := url.Values{}
	params.Set("uri", uri)
	params.Set("cid", cid)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var out struct {
		Likes []struct {
			Actor Actor `json:"actor"`
		} `json:"likes"`
		Cursor string `json:"cursor"`
	}
	endpoint := c.appViewURL + "/xrpc/app.bsky.feed.getLikes?" + params.Encode()
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, "", err
	}

	actors := make([]Actor, 0, len(out.Likes))
	for _, like := range out.Likes {
		actors = append(actors, like.Actor)
	}
	return actors, out.Cursor, nil
}

// GetFollows fetches one page of the accounts the given actor follows.
func (c *Client) GetFollows(ctx context.Context, actor string, limit int, cursor string) ([]Actor, string, error) {
	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var out struct {
		Follows []Actor `json:"follows"`
		Cursor  string  `json:"cursor"`
	}
	endpoint := c.appViewURL + "/xrpc/app.bsky.graph.getFollows?" + params.Encode()
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, "", err
	}
	return out.Follows, out.Cursor, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return errors.NewFetchError(endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
