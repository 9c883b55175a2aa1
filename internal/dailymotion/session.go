package dailymotion

import "golang.org/x/oauth2"

// session is the state a client accumulates while walking the
// token -> upload url -> upload -> create -> publish sequence. Each step
// reads what the previous one stored; nothing checks the order.
type session struct {
	token            *oauth2.Token
	accessToken      string
	uploadURL        string
	uploadedVideoURL string
	videoID          string

	// videoURL is memoized by VideoURL and never refreshed, even when a later
	// CreateVideo replaces videoID.
	videoURL string
}

// AccessToken returns the token stored by the last successful token request.
func (c *Client) AccessToken() string { return c.session.accessToken }

// Token returns the full OAuth2 token, or nil before any token request.
func (c *Client) Token() *oauth2.Token { return c.session.token }

func (c *Client) UploadURL() string        { return c.session.uploadURL }
func (c *Client) UploadedVideoURL() string { return c.session.uploadedVideoURL }
func (c *Client) VideoID() string          { return c.session.videoID }
