package ai

import (
	"regexp"
	"strings"
)

var thinkRegexp = regexp.MustCompile(`(?s)<think>.*?</think>`)

func isGarbageResponse(s string) bool {
	l := strings.ToLower(s)
	if strings.Contains(l, "<html") {
		return true
	}
	if strings.Contains(l, "not allowed") {
		return true
	}
	return len(strings.TrimSpace(s)) < 5
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}

func cleanReply(reply string) string {
	reply = strings.TrimSpace(thinkRegexp.ReplaceAllString(reply, ""))

	if len(reply) >= 2 {
		quotes := []struct{ open, close string }{
			{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"‘", "’"},
		}
		for _, q := range quotes {
			if strings.HasPrefix(reply, q.open) && strings.HasSuffix(reply, q.close) {
				reply = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(reply, q.open), q.close))
				break
			}
		}
	}

	if len(reply) > 500 {
		reply = reply[:500] + "…"
	}
	return reply
}
