package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	mentionsMatched atomic.Int64
	emptyResults    atomic.Int64
	fallbackScans   atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
	eventsPublished atomic.Int64
)

func Init() {}

func ObserveMentionMatched() {
	mentionsMatched.Add(1)
}

func ObserveEmptyResult() {
	emptyResults.Add(1)
}

func ObserveFallbackScan() {
	fallbackScans.Add(1)
}

func ObserveCacheHit() {
	cacheHits.Add(1)
}

func ObserveCacheMiss() {
	cacheMisses.Add(1)
}

func ObserveEventPublished() {
	eventsPublished.Add(1)
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP pharmakart_matcher_mentions_matched_total Number of mentions run through the matching engine.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_mentions_matched_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_mentions_matched_total %d\n", mentionsMatched.Load())

	fmt.Fprintf(w, "# HELP pharmakart_matcher_empty_results_total Number of mentions that yielded no candidate.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_empty_results_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_empty_results_total %d\n", emptyResults.Load())

	fmt.Fprintf(w, "# HELP pharmakart_matcher_fallback_scans_total Number of full-catalog fallback scans performed.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_fallback_scans_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_fallback_scans_total %d\n", fallbackScans.Load())

	fmt.Fprintf(w, "# HELP pharmakart_matcher_cache_hits_total Number of match requests served from the result cache.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_cache_hits_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_cache_hits_total %d\n", cacheHits.Load())

	fmt.Fprintf(w, "# HELP pharmakart_matcher_cache_misses_total Number of match requests that missed the result cache.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_cache_misses_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_cache_misses_total %d\n", cacheMisses.Load())

	fmt.Fprintf(w, "# HELP pharmakart_matcher_events_published_total Number of match result events published to the bus.\n")
	fmt.Fprintf(w, "# TYPE pharmakart_matcher_events_published_total counter\n")
	fmt.Fprintf(w, "pharmakart_matcher_events_published_total %d\n", eventsPublished.Load())
}
