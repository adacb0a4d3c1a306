package web

import (
	"strings"
	"testing"
)

func TestNewRenderer_ParsesEmbeddedTemplates(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	var buf strings.Builder
	data := struct{ Title string }{Title: "Welcome"}
	if err := r.Render(&buf, "landing", data, nil); err != nil {
		t.Fatalf("render landing: %v", err)
	}
	if !strings.Contains(buf.String(), "Welcome · MotoFlow") {
		t.Fatalf("rendered page missing title:\n%s", buf.String())
	}

	if err := r.Render(&strings.Builder{}, "no-such-page", data, nil); err == nil {
		t.Fatalf("unknown template name must error")
	}
}
