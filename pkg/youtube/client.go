package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const innertubeBaseURL = "https://www.youtube.com/youtubei/v1"

// VideoInfo is the metadata of a single video. Transcript may be empty when
// no captions are available; that is not an error.
type VideoInfo struct {
	VideoID     string
	Title       string
	Description string
	Transcript  string
}

// Playlist is the resolved content of a playlist.
type Playlist struct {
	Title    string
	VideoIDs []string
}

// Client is the video platform capability the ingestion pipeline depends on.
type Client interface {
	GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error)
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
}

// InnertubeClient talks to YouTube's internal JSON API. Constructed once at
// process start and shared; responses are cached and requests rate limited
// because the endpoint is quota-sensitive.
type InnertubeClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
}

func NewInnertubeClient() *InnertubeClient {
	return &InnertubeClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		cache:      cache.New(1*time.Hour, 2*time.Hour),
	}
}

type innertubeContext struct {
	Client innertubeClientInfo `json:"client"`
}

type innertubeClientInfo struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion,omitempty"`
}

func newInnertubeContext() innertubeContext {
	// The ANDROID client variant returns caption tracks without the web
	// player's throttling token dance.
	return innertubeContext{
		Client: innertubeClientInfo{
			ClientName:        "ANDROID",
			ClientVersion:     "19.09.37",
			AndroidSDKVersion: 30,
		},
	}
}

type playerRequest struct {
	Context innertubeContext `json:"context"`
	VideoID string           `json:"videoId"`
}

type playerResponse struct {
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// GetVideoInfo fetches title, description and (best effort) transcript for a
// video. Metadata failure is an error; transcript absence is not.
func (c *InnertubeClient) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	cacheKey := "video:" + videoID
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*VideoInfo), nil
	}

	player, err := c.fetchPlayer(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if player.PlayabilityStatus.Status != "" && player.PlayabilityStatus.Status != "OK" {
		return nil, fmt.Errorf("video %s not playable: %s", videoID, player.PlayabilityStatus.Reason)
	}

	info := &VideoInfo{
		VideoID:     videoID,
		Title:       player.VideoDetails.Title,
		Description: player.VideoDetails.ShortDescription,
		Transcript:  c.fetchTranscript(ctx, videoID, player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks),
	}
	if info.Title == "" {
		info.Title = "Unknown Title"
	}

	c.cache.Set(cacheKey, info, cache.DefaultExpiration)
	return info, nil
}

func (c *InnertubeClient) fetchPlayer(ctx context.Context, videoID string) (*playerResponse, error) {
	payload := playerRequest{
		Context: newInnertubeContext(),
		VideoID: videoID,
	}

	var res playerResponse
	if err := c.postJSON(ctx, innertubeBaseURL+"/player", payload, &res); err != nil {
		return nil, fmt.Errorf("fetch video info for %s: %w", videoID, err)
	}
	return &res, nil
}

type browseRequest struct {
	Context  innertubeContext `json:"context"`
	BrowseID string           `json:"browseId"`
}

type browseResponse struct {
	Header struct {
		PlaylistHeaderRenderer struct {
			Title struct {
				SimpleText string `json:"simpleText"`
			} `json:"title"`
		} `json:"playlistHeaderRenderer"`
	} `json:"header"`
	Contents struct {
		SingleColumnBrowseResultsRenderer browseTabs `json:"singleColumnBrowseResultsRenderer"`
		TwoColumnBrowseResultsRenderer    browseTabs `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
}

type browseTabs struct {
	Tabs []struct {
		TabRenderer struct {
			Content struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								PlaylistVideoListRenderer playlistVideoList `json:"playlistVideoListRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
						PlaylistVideoListRenderer playlistVideoList `json:"playlistVideoListRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"content"`
		} `json:"tabRenderer"`
	} `json:"tabs"`
}

type playlistVideoList struct {
	Contents []struct {
		PlaylistVideoRenderer struct {
			VideoID string `json:"videoId"`
		} `json:"playlistVideoRenderer"`
	} `json:"contents"`
}

// GetPlaylist resolves a playlist to its title and the ids of its videos.
// An unknown or private playlist yields an empty video list, not an error.
func (c *InnertubeClient) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	cacheKey := "playlist:" + playlistID
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*Playlist), nil
	}

	payload := browseRequest{
		Context:  newInnertubeContext(),
		BrowseID: "VL" + playlistID,
	}

	var res browseResponse
	if err := c.postJSON(ctx, innertubeBaseURL+"/browse", payload, &res); err != nil {
		return nil, fmt.Errorf("fetch playlist %s: %w", playlistID, err)
	}

	playlist := &Playlist{
		Title:    res.Header.PlaylistHeaderRenderer.Title.SimpleText,
		VideoIDs: collectVideoIDs(&res),
	}
	if playlist.Title == "" {
		playlist.Title = "Unknown Playlist"
	}

	c.cache.Set(cacheKey, playlist, 30*time.Minute)
	return playlist, nil
}

func collectVideoIDs(res *browseResponse) []string {
	ids := make([]string, 0)
	seen := make(map[string]bool)

	appendList := func(list playlistVideoList) {
		for _, item := range list.Contents {
			id := item.PlaylistVideoRenderer.VideoID
			if id != "" && !seen[id] {
				ids = append(ids, id)
				seen[id] = true
			}
		}
	}

	for _, column := range []browseTabs{
		res.Contents.SingleColumnBrowseResultsRenderer,
		res.Contents.TwoColumnBrowseResultsRenderer,
	} {
		for _, tab := range column.Tabs {
			for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
				appendList(section.PlaylistVideoListRenderer)
				for _, item := range section.ItemSectionRenderer.Contents {
					appendList(item.PlaylistVideoListRenderer)
				}
			}
		}
	}

	return ids
}

func (c *InnertubeClient) postJSON(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status error, got status %d. with response body %s", res.StatusCode, string(resBody))
	}

	return json.Unmarshal(resBody, out)
}
