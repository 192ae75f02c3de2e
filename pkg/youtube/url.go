package youtube

import "regexp"

// Matches the common YouTube URL shapes: watch?v=, youtu.be/, /v/, /u/x/,
// /embed/, and &v= inside longer query strings.
var videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

var playlistIDPattern = regexp.MustCompile(`[?&]list=([^#&?]+)`)

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// Returns "" when no id is recoverable.
func ExtractVideoID(url string) string {
	match := videoIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	if len(match[1]) != 11 {
		return ""
	}
	return match[1]
}

// ExtractPlaylistID pulls the list= parameter out of a YouTube URL.
// Returns "" when the URL carries no playlist id.
func ExtractPlaylistID(url string) string {
	match := playlistIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}
