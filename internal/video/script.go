package video

import (
	"context"
	"fmt"
	"strings"

	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
)

// ScriptModel identifies the generator that produced a script; stored
// in the item's video metadata.
const ScriptModel = "edufeed-script-v1"

// TemplateScriptGenerator builds a short vertical-video narration from
// the item's fields. Deterministic by construction, which keeps repeated
// attempts comparable.
type TemplateScriptGenerator struct{}

func NewTemplateScriptGenerator() *TemplateScriptGenerator {
	return &TemplateScriptGenerator{}
}

var hooks = map[common.ContentType]string{
	common.ContentTypeAnnouncement: "Big news for everyone on campus!",
	common.ContentTypeAssignment:   "Heads up, there's work to do.",
	common.ContentTypeEvent:        "Don't miss what's coming up.",
	common.ContentTypeProgramme:    "Here's what's on the programme.",
	common.ContentTypeResource:     "A new resource just dropped.",
}

func (g *TemplateScriptGenerator) Generate(ctx context.Context, item *dbmysql.FeedItem) (*Script, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("item %d has no title to narrate", item.ItemID)
	}

	hook := hooks[common.ContentType(item.ContentType)]
	if hook == "" {
		hook = "Here's something you should know."
	}

	// keep the body short; vertical videos live or die in 30 seconds
	body := firstWords(item.Description, 40)

	var b strings.Builder
	b.WriteString(hook)
	b.WriteString(" ")
	b.WriteString(item.Title)
	b.WriteString(". ")
	if body != "" {
		b.WriteString(body)
		if !strings.HasSuffix(body, ".") {
			b.WriteString(".")
		}
		b.WriteString(" ")
	}
	if item.Deadline != nil {
		fmt.Fprintf(&b, "Deadline: %s. ", item.Deadline.Format("Monday 02 January"))
	}
	b.WriteString("Check the feed for the full details!")

	text := b.String()
	return &Script{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Model:     ScriptModel,
	}, nil
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
