// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestRegistryIsComplete(t *testing.T) {
	ids := Ids()
	if len(ids) == 0 {
		t.Fatal("Ids() returned no registered issues")
	}
	for _, id := range ids {
		issue := Get(id)
		if issue == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if issue.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, issue.Id())
		}
		if issue.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
}

func TestGetUnknownId(t *testing.T) {
	if got := Get(Id(9999)); got != nil {
		t.Errorf("Get(9999) = %v, want nil", got)
	}
}

func TestIdsAreSorted(t *testing.T) {
	ids := Ids()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("Ids() not strictly ascending: %v", ids)
		}
	}
}

func TestRenderIncludesDocLinks(t *testing.T) {
	// Bypass glamour so the assertion is about content, not ANSI styling.
	orig := render
	render = func(in string, _ string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Get(ArchiveNotFoundId).Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Archive not found") {
		t.Errorf("rendered issue missing title: %q", out)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("rendered issue missing doc links section: %q", out)
	}
}

func TestDocLinksReturnsCopy(t *testing.T) {
	issue := Get(ArchiveNotFoundId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links on ArchiveNotFoundId")
	}
	links[0] = "https://example.invalid"
	if issue.DocLinks()[0] == "https://example.invalid" {
		t.Error("DocLinks() exposes internal slice")
	}
}
