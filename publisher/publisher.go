package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/pevans/techdigest/config"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

const (
	// HeaderLabel opens every digest message.
	HeaderLabel = "Techmeme Top 10 Digest"

	// HeaderDateFormat is the long date shown in the header.
	HeaderDateFormat = "Monday, January 2, 2006"
)

// PublishError reports that Slack did not accept the digest.
type PublishError struct {
	Channel string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to post digest to %s: %v", e.Channel, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Receipt is Slack's acknowledgment of a posted message.
type Receipt struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

// Publisher posts digests to a single Slack channel.
type Publisher struct {
	client  *slack.Client
	channel string
	apiURL  string
	now     func() time.Time
	log     zerolog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAPIURL points the Slack client at a different Web API base URL. The
// URL must end with a slash.
func WithAPIURL(url string) Option {
	return func(p *Publisher) {
		p.apiURL = url
	}
}

// WithClock sets the function used to date the header.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a publisher for the channel and bot token in cfg.
func New(cfg *config.RunConfig, log zerolog.Logger, opts ...Option) *Publisher {
	p := &Publisher{
		channel: cfg.ChannelID,
		now:     time.Now,
		log:     log.With().Str("component", "publisher").Str("channel", cfg.ChannelID).Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	var clientOpts []slack.Option
	if p.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(p.apiURL))
	}
	p.client = slack.New(cfg.ChannelToken, clientOpts...)

	return p
}

// Header returns the bold title line for a digest posted at t.
func Header(t time.Time) string {
	return fmt.Sprintf("*%s - %s* :newspaper:", HeaderLabel, t.Format(HeaderDateFormat))
}

// Compose joins the header for t and the digest body.
func Compose(t time.Time, body string) string {
	return Header(t) + "\n\n" + body
}

// Publish posts the digest as one mrkdwn message. Slack renders mrkdwn by
// default, so only the channel and text are sent.
func (p *Publisher) Publish(ctx context.Context, text string) (*Receipt, error) {
	message := Compose(p.now(), text)

	channel, timestamp, err := p.client.PostMessageContext(ctx, p.channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return nil, &PublishError{Channel: p.channel, Err: err}
	}

	p.log.Info().Str("ts", timestamp).Msg("Posted digest")
	return &Receipt{Channel: channel, Timestamp: timestamp}, nil
}
