package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Config is the process-wide configuration, loaded once at startup and
// read-only thereafter. Missing required secrets are the only fatal
// startup condition.
type Config struct {
	Addr string `long:"addr" env:"ADDR" default:":8080" description:"HTTP listen address"`

	SlackSigningSecret string `long:"slack-signing-secret" env:"SLACK_SIGNING_SECRET" required:"true" description:"secret used to verify inbound Slack webhooks"`
	SlackBotToken      string `long:"slack-bot-token" env:"SLACK_BOT_TOKEN" required:"true" description:"bot token used to post operator notifications"`
	SlackChannelID     string `long:"slack-channel-id" env:"SLACK_CHANNEL_ID" required:"true" description:"channel that receives operator notifications"`

	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"Jaeger collector endpoint; tracing is disabled when empty"`
}

func Parse() (Config, error) {
	var cfg Config
	if _, err := flags.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}

	return cfg, nil
}
