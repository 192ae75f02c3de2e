package extract

import (
	"context"
	"errors"
	"fmt"

	"study-tutor-be/pkg/youtube"
)

var (
	// ErrInvalidSource marks a URL or id the user can correct (4xx).
	ErrInvalidSource = errors.New("invalid source")
	// ErrExtractionFailed marks an unreadable PDF or unfetchable video
	// metadata. Fatal to the ingestion of that resource.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrEmptySource marks a playlist with zero videos; no resource is
	// created for it.
	ErrEmptySource = errors.New("empty source")
)

// Source is the closed set of ingestible source kinds. The pipeline
// dispatches on the concrete type instead of comparing type strings.
type Source interface {
	sourceKind() string
}

// PDFSource is an uploaded PDF document held in memory.
type PDFSource struct {
	Data []byte
}

// VideoSource is a single YouTube video URL.
type VideoSource struct {
	URL string
}

// PlaylistSource is a YouTube playlist URL (list= parameter).
type PlaylistSource struct {
	URL string
}

// LinkSource is a plain link, optionally with pasted text content.
type LinkSource struct {
	URL     string
	Content string
}

func (PDFSource) sourceKind() string      { return "pdf" }
func (VideoSource) sourceKind() string    { return "youtube_video" }
func (PlaylistSource) sourceKind() string { return "youtube_playlist" }
func (LinkSource) sourceKind() string     { return "link" }

// Extractor turns a source descriptor into a title and raw text.
type Extractor struct {
	yt youtube.Client
}

func NewExtractor(yt youtube.Client) *Extractor {
	return &Extractor{
		yt: yt,
	}
}

// Extract resolves a single-document source to (title, rawText). Playlists
// are multi-document and go through ResolvePlaylist + ExtractVideo instead.
func (e *Extractor) Extract(ctx context.Context, src Source) (string, string, error) {
	switch s := src.(type) {
	case PDFSource:
		text, err := extractPDFText(s.Data)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		return "", text, nil

	case VideoSource:
		videoID := youtube.ExtractVideoID(s.URL)
		if videoID == "" {
			return "", "", fmt.Errorf("%w: no video id in url %q", ErrInvalidSource, s.URL)
		}
		return e.ExtractVideo(ctx, videoID)

	case LinkSource:
		return "", s.Content, nil

	case PlaylistSource:
		return "", "", fmt.Errorf("%w: playlist sources are multi-document", ErrInvalidSource)

	default:
		return "", "", fmt.Errorf("%w: unknown source kind", ErrInvalidSource)
	}
}

// ExtractVideo fetches one video's metadata and composes the ingestible
// text. Metadata failure is fatal; an empty transcript is valid and simply
// yields a low-content document.
func (e *Extractor) ExtractVideo(ctx context.Context, videoID string) (string, string, error) {
	info, err := e.yt.GetVideoInfo(ctx, videoID)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	text := fmt.Sprintf("%s\n\n%s\n\nTranscript:\n%s", info.Title, info.Description, info.Transcript)
	return info.Title, text, nil
}

// ResolvePlaylist parses the playlist id out of the URL and resolves it to
// its title and video ids. Zero videos signals ErrEmptySource.
func (e *Extractor) ResolvePlaylist(ctx context.Context, url string) (string, *youtube.Playlist, error) {
	playlistID := youtube.ExtractPlaylistID(url)
	if playlistID == "" {
		return "", nil, fmt.Errorf("%w: no playlist id in url %q", ErrInvalidSource, url)
	}

	playlist, err := e.yt.GetPlaylist(ctx, playlistID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if len(playlist.VideoIDs) == 0 {
		return "", nil, fmt.Errorf("%w: no videos found in playlist %s", ErrEmptySource, playlistID)
	}

	return playlistID, playlist, nil
}
