package api

import (
	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/models/dtos"
)

// windowLabel renders a query window for the chat header line.
func windowLabel(w dtos.QueryWindow) string {
	if w.From == "" && w.To == "" {
		return ""
	}
	return w.From + " to " + w.To
}

// chatPages renders entries as a first page plus the remainder that the
// display limit pushed behind a continuation token. The remainder is
// empty when everything fits on one page.
func chatPages[T any](entries []T, limit int, window string, format func([]T, chat.PageOptions) string) (first, rest string) {
	total := len(entries)
	if limit <= 0 || total <= limit {
		return format(entries, chat.PageOptions{Start: 0, Total: total, Window: window}), ""
	}

	first = format(entries[:limit], chat.PageOptions{Start: 0, Total: total, Window: window})
	rest = format(entries[limit:], chat.PageOptions{Start: limit, Total: total, Window: window})
	return first, rest
}
