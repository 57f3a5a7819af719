package historyhooks

import (
	"log"
	"regexp"

	"go.uber.org/atomic"
)

// ──────────────────────────────────────────────
// Reminder Rewriter — datetime reminder tag cleanup
// ──────────────────────────────────────────────
//
// Hosts stamp stored turns with a reminder of when they happened:
//
//	<system_reminder>Current datetime: 2026-02-25 01:24 (CST)</system_reminder>
//
// Before the history goes back to the model, every such marker is
// rewritten to the shorter
//
//	<date_and_time>2026-02-25 01:24 (CST)</date_and_time>
//
// with the timestamp kept byte-for-byte. Anything that does not match
// the full wrapper (missing closing tag, missing prefix) is left
// untouched, and content shapes the rewriter does not recognize are
// skipped; this pass never aborts the host's request.

// reminderPattern matches the complete wrapper. The timestamp may not
// contain '<', which also bounds the capture at the closing tag.
var reminderPattern = regexp.MustCompile(`<system_reminder>Current datetime: ([^<]+)</system_reminder>`)

// ReformatText rewrites every datetime reminder marker in s.
// Returns the result and whether anything changed.
func ReformatText(s string) (string, bool) {
	out := reminderPattern.ReplaceAllString(s, "<date_and_time>$1</date_and_time>")
	return out, out != s
}

// ReminderRewriter rewrites datetime reminder markers across a whole
// conversation history, in place. The zero value is ready to use.
//
// History entries come in three shapes:
//   - a plain string
//   - map[string]interface{} with a string "content"
//   - map[string]interface{} whose "content" is a []interface{} of
//     parts, text parts being {"type": "text", "text": "..."}
type ReminderRewriter struct {
	calls     atomic.Int64
	rewritten atomic.Int64
}

// Rewrite processes every entry, including the most recent one, and
// returns the number of text fields rewritten in this call. Mutation
// is in place; the slice stays shared with the caller. A fault in one
// entry never stops the pass.
func (rw *ReminderRewriter) Rewrite(history []interface{}) int {
	changed := 0
	for i := range history {
		changed += rw.rewriteEntry(history, i)
	}
	rw.calls.Inc()
	rw.rewritten.Add(int64(changed))
	return changed
}

// TotalRewritten returns the number of text fields rewritten across
// all calls.
func (rw *ReminderRewriter) TotalRewritten() int64 {
	return rw.rewritten.Load()
}

// TotalCalls returns the number of Rewrite calls.
func (rw *ReminderRewriter) TotalCalls() int64 {
	return rw.calls.Load()
}

func (rw *ReminderRewriter) rewriteEntry(history []interface{}, i int) (n int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ReminderRewriter] entry %d panic: %v", i, r)
			n = 0
		}
	}()

	switch entry := history[i].(type) {
	case string:
		if out, ok := ReformatText(entry); ok {
			history[i] = out
			n++
		}
	case map[string]interface{}:
		n += rewriteContent(entry)
	}
	return n
}

func rewriteContent(msg map[string]interface{}) int {
	switch content := msg["content"].(type) {
	case string:
		if out, ok := ReformatText(content); ok {
			msg["content"] = out
			return 1
		}
	case []interface{}:
		changed := 0
		for _, raw := range content {
			part, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if kind, _ := part["type"].(string); kind != "text" {
				continue
			}
			text, ok := part["text"].(string)
			if !ok {
				continue
			}
			if out, ok := ReformatText(text); ok {
				part["text"] = out
				changed++
			}
		}
		return changed
	}
	return 0
}
