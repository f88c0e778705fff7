package strategies

import (
	"testing"

	"yieldsynth-tui/data"

	"github.com/stretchr/testify/assert"
)

func TestTabsShowCounts(t *testing.T) {
	templates := data.Templates()
	out := Tabs(data.CategoryAll, data.CategoryCounts(templates))

	for _, c := range data.Categories {
		assert.Contains(t, out, c.Label())
	}
	assert.Contains(t, out, "(6)")
}

func TestRenderEmptyResult(t *testing.T) {
	out := Render(Params{Counts: map[data.Category]int{}})
	assert.Contains(t, out, "No strategies found")
}

func TestRenderResult(t *testing.T) {
	s := data.Templates()[0]

	ok := RenderResult(s, "0xabc", "")
	assert.Contains(t, ok, "0xabc")
	assert.Contains(t, ok, s.Name)

	failed := RenderResult(s, "", "user rejected")
	assert.Contains(t, failed, "Error: user rejected")
}
