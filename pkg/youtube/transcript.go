package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// fetchTranscript resolves a video's transcript text. Two-stage fallback:
// the caption track from the player response is tried first, then the public
// timedtext endpoint. Total failure returns "", never an error; transcript
// absence must not block ingestion of the surrounding metadata.
func (c *InnertubeClient) fetchTranscript(ctx context.Context, videoID string, tracks []captionTrack) string {
	if text := c.fetchFromCaptionTrack(ctx, tracks); text != "" {
		return text
	}
	return c.fetchFromTimedText(ctx, videoID)
}

// FetchTranscript is the standalone transcript lookup used when the player
// metadata was fetched elsewhere.
func (c *InnertubeClient) FetchTranscript(ctx context.Context, videoID string) string {
	player, err := c.fetchPlayer(ctx, videoID)
	if err != nil {
		return c.fetchFromTimedText(ctx, videoID)
	}
	return c.fetchTranscript(ctx, videoID, player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks)
}

type json3Transcript struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *InnertubeClient) fetchFromCaptionTrack(ctx context.Context, tracks []captionTrack) string {
	track := pickCaptionTrack(tracks)
	if track == nil {
		return ""
	}

	var res json3Transcript
	if err := c.getJSON(ctx, track.BaseURL+"&fmt=json3", &res); err != nil {
		return ""
	}

	var parts []string
	for _, event := range res.Events {
		for _, seg := range event.Segs {
			text := strings.TrimSpace(seg.UTF8)
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// pickCaptionTrack prefers an English manual track, then any manual track,
// then whatever is first (including auto-generated).
func pickCaptionTrack(tracks []captionTrack) *captionTrack {
	if len(tracks) == 0 {
		return nil
	}
	for i := range tracks {
		if tracks[i].LanguageCode == "en" && tracks[i].Kind != "asr" {
			return &tracks[i]
		}
	}
	for i := range tracks {
		if tracks[i].Kind != "asr" {
			return &tracks[i]
		}
	}
	return &tracks[0]
}

type timedTextDocument struct {
	Texts []struct {
		Content string `xml:",chardata"`
	} `xml:"text"`
}

func (c *InnertubeClient) fetchFromTimedText(ctx context.Context, videoID string) string {
	url := fmt.Sprintf("https://video.google.com/timedtext?lang=en&v=%s", videoID)

	body, err := c.getRaw(ctx, url)
	if err != nil {
		return ""
	}

	var doc timedTextDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return ""
	}

	var parts []string
	for _, t := range doc.Texts {
		text := strings.TrimSpace(t.Content)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func (c *InnertubeClient) getJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.getRaw(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *InnertubeClient) getRaw(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status error, got status %d", res.StatusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return body, nil
}
