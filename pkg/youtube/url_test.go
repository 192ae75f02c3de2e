package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	const id = "dQw4w9WgXcQ"

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=" + id, id},
		{"short url", "https://youtu.be/" + id, id},
		{"embed url", "https://www.youtube.com/embed/" + id, id},
		{"watch with extra params", "https://www.youtube.com/watch?v=" + id + "&t=42s", id},
		{"playlist-embedded video", "https://www.youtube.com/watch?v=" + id + "&list=PLabc123", id},
		{"ampersand v param", "https://www.youtube.com/watch?feature=share&v=" + id, id},
		{"no video id", "https://www.youtube.com/playlist?list=PLabc123", ""},
		{"id too short", "https://www.youtube.com/watch?v=short", ""},
		{"not a youtube url", "https://example.com/watch?v=" + id, id}, // permissive by design
		{"garbage", "not a url at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.url); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDIdempotentAcrossForms(t *testing.T) {
	const id = "jNQXAC9IVRw"
	forms := []string{
		"https://www.youtube.com/watch?v=" + id,
		"https://youtu.be/" + id,
		"https://www.youtube.com/embed/" + id,
	}
	for _, url := range forms {
		if got := ExtractVideoID(url); got != id {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", url, got, id)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"playlist url", "https://www.youtube.com/playlist?list=PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG", "PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG"},
		{"watch url with list", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc", "PLabc"},
		{"no list param", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ""},
		{"list with trailing fragment", "https://www.youtube.com/playlist?list=PLabc#top", "PLabc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
