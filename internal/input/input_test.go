package input

import (
	"strings"
	"testing"
)

func TestFromHTML_StripsMarkup(t *testing.T) {
	doc := `<html><head><title>ignored</title><style>p{color:red}</style></head>
<body><p>Installation of <b>50 MW</b> solar plant.</p>
<script>alert("x")</script></body></html>`

	text, err := FromHTML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "50 MW") {
		t.Errorf("expected visible text to survive, got %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color") {
		t.Errorf("expected script/style content to be stripped, got %q", text)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("solar\n\n  farm\twith   storage ")
	if got != "solar farm with storage" {
		t.Errorf("unexpected normalization: %q", got)
	}
}
