package reload

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const keepAlive = 25 * time.Second

// Handler streams reload events to EventSource clients. A "ready" event carries the
// current version on connect and each published change follows as a "change" event.
func Handler(b *Broker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch, version := b.Subscribe()
		defer b.Unsubscribe(ch)

		fmt.Fprintf(w, "event: ready\ndata: %d\n\n", version)
		flusher.Flush()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case change, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.MarshalIndent(change, "", "\t")
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\nid: %d\n", change.Version)
				writeSSEPayload(w, data)
				flusher.Flush()
			}
		}
	})
}

// writeSSEPayload frames data as one SSE message, one data line per input line.
func writeSSEPayload(w io.Writer, data []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		fmt.Fprintf(w, "data: %s\n", scanner.Text())
	}
	fmt.Fprint(w, "\n")
}
