package collectorimpl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestCollectManyKeepsInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repo := r.URL.Query().Get("repo")
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				likeRecord("at://"+repo+"/app.bsky.feed.post/1", "t1"),
				likeRecord("at://"+repo+"/app.bsky.feed.post/2", "t2"),
			},
		})
	}))
	defer server.Close()

	c := testCollector(server.URL, &stubResolver{pds: server.URL})
	accounts := []domain.Account{
		{DID: "did:plc:b"},
		{DID: "did:plc:a"},
		{DID: "did:plc:c"},
	}

	table, failures := c.CollectMany(context.Background(), accounts, collector.ManyOptions{
		PerAccountCount: 5,
		Concurrency:     3,
	})
	if len(failures) != 0 {
		t.Fatalf("failures = %v, want none", failures)
	}
	if table.Len() != 6 {
		t.Fatalf("got %d rows, want 6", table.Len())
	}

	// Rows come back grouped by account in input order, regardless of
	// which worker finished first.
	want := []string{"did:plc:b", "did:plc:a", "did:plc:c"}
	if diff := cmp.Diff(want, table.Accounts()); diff != "" {
		t.Errorf("account order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectManyIsolatesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repo := r.URL.Query().Get("repo")
		if repo == "did:plc:bad" {
			http.Error(w, "account suspended", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				likeRecord("at://"+repo+"/app.bsky.feed.post/1", "t1"),
			},
		})
	}))
	defer server.Close()

	c := testCollector(server.URL, &stubResolver{pds: server.URL})
	accounts := []domain.Account{
		{DID: "did:plc:good1"},
		{DID: "did:plc:bad"},
		{DID: "did:plc:good2"},
	}

	table, failures := c.CollectMany(context.Background(), accounts, collector.ManyOptions{PerAccountCount: 5})

	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Account.DID != "did:plc:bad" {
		t.Errorf("failed account = %q", failures[0].Account.DID)
	}
	if failures[0].Err == nil {
		t.Error("failure carries no error")
	}

	want := []string{"did:plc:good1", "did:plc:good2"}
	if diff := cmp.Diff(want, table.Accounts()); diff != "" {
		t.Errorf("surviving accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectManyColumnProjection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				likeRecord("at://did:plc:x/app.bsky.feed.post/1", "t1"),
			},
		})
	}))
	defer server.Close()

	c := testCollector(server.URL, &stubResolver{pds: server.URL})

	t.Run("did-only input omits handle columns", func(t *testing.T) {
		table, _ := c.CollectMany(context.Background(),
			[]domain.Account{{DID: "did:plc:a"}},
			collector.ManyOptions{PerAccountCount: 5})

		want := []string{"profile_id", "uri", "url", "author", "liked_at"}
		if diff := cmp.Diff(want, table.Columns); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("any handle in input adds profile_handle", func(t *testing.T) {
		table, _ := c.CollectMany(context.Background(),
			[]domain.Account{
				{DID: "did:plc:a"},
				{DID: "did:plc:b", Handle: "b.bsky.social"},
			},
			collector.ManyOptions{PerAccountCount: 5})

		want := []string{"profile_id", "profile_handle", "uri", "url", "author", "liked_at"}
		if diff := cmp.Diff(want, table.Columns); diff != "" {
			t.Errorf("columns mismatch (-want +got):\n%s", diff)
		}
	})
}
