package identityimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/compmotifs/likeminds/internal/identity"
	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/errors"
	"github.com/compmotifs/likeminds/pkg/logger"
	"go.uber.org/fx"
)

type ResolverImpl struct {
	appViewURL   string
	plcDirectory string
	httpClient   *http.Client
	logger       logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *ResolverImpl {
	return &ResolverImpl{
		appViewURL:   strings.TrimRight(opts.Config.Bluesky.AppViewURL, "/"),
		plcDirectory: strings.TrimRight(opts.Config.Bluesky.PLCDirectory, "/"),
		httpClient:   &http.Client{Timeout: opts.Config.Bluesky.RequestTimeout},
		logger:       opts.Logger.WithComponent("IdentityResolver"),
	}
}

var _ identity.Resolver = (*ResolverImpl)(nil)

func (r *ResolverImpl) ResolveHandle(ctx context.Context, handle string) (string, error) {
	endpoint := r.appViewURL + "/xrpc/com.atproto.identity.resolveHandle?handle=" + url.QueryEscape(handle)

	var out struct {
		DID string `json:"did"`
	}
	if err := r.getJSON(ctx, endpoint, &out); err != nil {
		return "", errors.Wrap(errors.ErrResolution, fmt.Sprintf("resolve handle %q: %v", handle, err))
	}
	if out.DID == "" {
		return "", errors.Wrap(errors.ErrResolution, fmt.Sprintf("no DID returned for handle %q", handle))
	}
	return out.DID, nil
}

func (r *ResolverImpl) ServiceEndpoint(ctx context.Context, did string) (string, error) {
	var endpoint string
	if host, ok := strings.CutPrefix(did, "did:web:"); ok {
		endpoint = "https://" + host + "/.well-known/did.json"
	} else {
		endpoint = r.plcDirectory + "/" + url.PathEscape(did)
	}

	var doc struct {
		Service []struct {
			ServiceEndpoint string `json:"serviceEndpoint"`
		} `json:"service"`
	}
	if err := r.getJSON(ctx, endpoint, &doc); err != nil {
		return "", errors.Wrap(errors.ErrResolution, fmt.Sprintf("fetch DID document for %s: %v", did, err))
	}
	if len(doc.Service) == 0 || doc.Service[0].ServiceEndpoint == "" {
		return "", errors.Wrap(errors.ErrResolution, fmt.Sprintf("no service endpoint published for %s", did))
	}
	return doc.Service[0].ServiceEndpoint, nil
}

func (r *ResolverImpl) Normalize(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.Resolved() {
		return account, nil
	}
	if account.Handle == "" {
		return domain.Account{}, errors.Wrap(errors.ErrResolution, "account has neither DID nor handle")
	}
	did, err := r.ResolveHandle(ctx, account.Handle)
	if err != nil {
		return domain.Account{}, err
	}
	account.DID = did
	return account, nil
}

func (r *ResolverImpl) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewFetchError(endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
