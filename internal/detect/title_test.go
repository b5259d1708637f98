package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ias-lab/pasiphae/internal/model"
)

func titleEntries(titles ...string) []model.TitleEntry {
	entries := make([]model.TitleEntry, len(titles))
	for i, title := range titles {
		entries[i] = model.TitleEntry{Title: title, Time: time.Unix(int64(i), 0)}
	}
	return entries
}

func TestTitleAnalyze_NeverChanged(t *testing.T) {
	r := Title{State: &model.TitleState{Entries: titleEntries("Home")}}.Analyze()
	assert.False(t, r.Detected)
}

func TestTitleAnalyze_ManyChanges(t *testing.T) {
	state := &model.TitleState{Entries: titleEntries("Home", "Products", "Cart", "Checkout")}
	r := Title{State: state}.Analyze()
	assert.True(t, r.Detected)
	assert.Equal(t, 0.9, r.Confidence)
}

func TestTitleAnalyze_OneChange(t *testing.T) {
	state := &model.TitleState{Entries: titleEntries("Home", "Products")}
	r := Title{State: state}.Analyze()
	assert.True(t, r.Detected)
	assert.Equal(t, 0.4, r.Confidence)
}
