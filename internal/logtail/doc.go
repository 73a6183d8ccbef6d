// Package logtail reads the end of leaflet's own log file for the activity view.
//
// Read extracts the last N lines without loading the whole file: lines are
// streamed through a fixed-size ring buffer. Tail additionally decodes each
// line as a zerolog JSON object into an Entry (time, level, message and the
// remaining fields sorted by key). Lines that are not JSON are kept verbatim
// as the entry message.
//
//	entries, err := logtail.Tail(cfg.LogPath(), 500)
//	for _, e := range entries {
//		fmt.Println(e.Format()) // 14:02:11 WRN retrying fetch attempt=1 fetch=catalog
//	}
package logtail
