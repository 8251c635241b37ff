package scienceimpl

import "testing"

func TestRelevant(t *testing.T) {
	cl := New()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "research keyword",
			text: "Excited to share our new research on coral bleaching",
			want: true,
		},
		{
			name: "keyword is case insensitive",
			text: "SCIENCE is back on the menu",
			want: true,
		},
		{
			name: "keyword must be a whole word",
			text: "my conscience is clear",
			want: false,
		},
		{
			name: "arxiv link",
			text: "interesting read https://arxiv.org/abs/2401.12345",
			want: true,
		},
		{
			name: "doi link",
			text: "published today: https://doi.org/10.1038/s41586-024-07123-7",
			want: true,
		},
		{
			name: "pubmed central link",
			text: "see https://www.ncbi.nlm.nih.gov/pmc/articles/PMC9999999",
			want: true,
		},
		{
			name: "ordinary link",
			text: "lunch thread https://example.com/sandwiches",
			want: false,
		},
		{
			name: "link with trailing punctuation",
			text: "great paper (https://arxiv.org/abs/2401.12345).",
			want: true,
		},
		{
			name: "plain chatter",
			text: "anyone else watching the game tonight?",
			want: false,
		},
		{
			name: "empty text",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cl.Relevant(tt.text); got != tt.want {
				t.Errorf("Relevant(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsScientificURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://arxiv.org/abs/2401.12345", true},
		{"https://www.nature.com/articles/s41586-024-07123-7", true},
		{"https://www.biorxiv.org/content/10.1101/2024.01.01.573742v1", true},
		{"https://doi.org/10.1126/science.abc1234", true},
		{"https://example.com/pdf/whitepaper.pdf", true},
		{"https://example.com/", false},
		{"https://notarxiv.org.evil.com/abs/1", false},
		{"not a url at all", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsScientificURL(tt.url); got != tt.want {
				t.Errorf("IsScientificURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
