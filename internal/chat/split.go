package chat

import "strings"

// DefaultChunkLimit is the transport ceiling for a single chat message.
const DefaultChunkLimit = 4000

// ContinuationMarker prefixes every chunk after the first so a reader
// scrolling backwards can tell the message is a carry-over.
const ContinuationMarker = "(cont.) "

// Split cuts text into chunks of at most limit bytes, breaking on line
// boundaries wherever possible. Chunks after the first carry the
// continuation marker. A single line longer than a whole chunk is cut
// mid-line rather than dropped.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder

	capacity := func() int {
		if len(chunks) == 0 {
			return limit
		}
		return limit - len(ContinuationMarker)
	}

	emit := func() {
		if cur.Len() == 0 {
			return
		}
		body := cur.String()
		if len(chunks) > 0 {
			body = ContinuationMarker + body
		}
		chunks = append(chunks, body)
		cur.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		for {
			sep := 0
			if cur.Len() > 0 {
				sep = 1
			}
			if cur.Len()+sep+len(line) <= capacity() {
				if sep == 1 {
					cur.WriteByte('\n')
				}
				cur.WriteString(line)
				break
			}

			if cur.Len() > 0 {
				emit()
				continue
			}

			// Chunk is empty and the line still does not fit.
			cut := capacity()
			cur.WriteString(line[:cut])
			line = line[cut:]
			emit()
		}
	}

	emit()
	return chunks
}
