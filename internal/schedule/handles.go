package schedule

import (
	"fmt"
	"strings"
)

// Platform is a supported social network.
type Platform string

const (
	PlatformYouTube Platform = "YouTube"
	PlatformTwitch  Platform = "Twitch"
	PlatformTwitter Platform = "Twitter"
	PlatformDiscord Platform = "Discord"
	PlatformTikTok  Platform = "TikTok"
)

// Platforms in picker order.
var Platforms = []Platform{PlatformYouTube, PlatformTwitch, PlatformTwitter, PlatformDiscord, PlatformTikTok}

// Placeholder is the hint shown for an empty handle on p.
func (p Platform) Placeholder() string {
	switch p {
	case PlatformYouTube:
		return "@yourchannel"
	case PlatformTwitch:
		return "yourstream"
	case PlatformTwitter, PlatformTikTok:
		return "@yourusername"
	case PlatformDiscord:
		return "YourServer#1234"
	default:
		return "@yourhandle"
	}
}

// Handle is a social account shown under the artist credit.
type Handle struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Handle   string   `json:"handle"`
	Enabled  bool     `json:"enabled"`
}

// Visible reports whether the handle is drawn on the card.
func (h Handle) Visible() bool {
	return h.Enabled && strings.TrimSpace(h.Handle) != ""
}

// VisibleHandles returns the handles that appear on the card.
func (d *Data) VisibleHandles() []Handle {
	var out []Handle
	for _, h := range d.SocialMediaHandles {
		if h.Visible() {
			out = append(out, h)
		}
	}
	return out
}

// AddHandle appends an enabled, empty YouTube handle.
func (d *Data) AddHandle() (Handle, error) {
	if len(d.SocialMediaHandles) >= MaxSocialHandles {
		return Handle{}, ErrTooManyHandles
	}
	h := Handle{ID: newID(), Platform: PlatformYouTube, Enabled: true}
	d.SocialMediaHandles = append(d.SocialMediaHandles, h)
	return h, nil
}

// RemoveHandle deletes a handle.
func (d *Data) RemoveHandle(id string) error {
	idx, err := d.handleIndex(id)
	if err != nil {
		return err
	}
	hs := d.SocialMediaHandles
	d.SocialMediaHandles = append(hs[:idx:idx], hs[idx+1:]...)
	return nil
}

// ToggleHandle flips whether a handle is shown.
func (d *Data) ToggleHandle(id string) error {
	idx, err := d.handleIndex(id)
	if err != nil {
		return err
	}
	d.SocialMediaHandles[idx].Enabled = !d.SocialMediaHandles[idx].Enabled
	return nil
}

// SetHandleText updates the account name.
func (d *Data) SetHandleText(id, text string) error {
	idx, err := d.handleIndex(id)
	if err != nil {
		return err
	}
	d.SocialMediaHandles[idx].Handle = text
	return nil
}

// SetHandlePlatform moves a handle to another network.
func (d *Data) SetHandlePlatform(id string, p Platform) error {
	known := false
	for _, candidate := range Platforms {
		if candidate == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	idx, err := d.handleIndex(id)
	if err != nil {
		return err
	}
	d.SocialMediaHandles[idx].Platform = p
	return nil
}

// NextPlatform cycles through Platforms.
func NextPlatform(p Platform, dir int) Platform {
	idx := 0
	for i, candidate := range Platforms {
		if candidate == p {
			idx = i
			break
		}
	}
	n := len(Platforms)
	return Platforms[((idx+dir)%n+n)%n]
}

func (d *Data) handleIndex(id string) (int, error) {
	for i, h := range d.SocialMediaHandles {
		if h.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownHandle, id)
}
