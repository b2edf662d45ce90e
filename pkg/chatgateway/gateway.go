package chatgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/braddotcoffee/MinimalRoboBanana/pkg/httpclient"
)

const (
	DirectMessageEndpoint  = "/messages/direct"
	ChannelMessageEndpoint = "/messages/channel"
)

// Gateway is the outbound side of the chat platform: private replies to a
// single user and public messages to a channel.
type Gateway interface {
	Reply(ctx context.Context, userID int64, text string) (Response, error)
	Announce(ctx context.Context, channelID int64, text string) (Response, error)
}

type gateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

func (g *gateway) Reply(ctx context.Context, userID int64, text string) (Response, error) {
	request := SendDirectMessageRequest{UserID: userID, Text: text}
	return g.send(ctx, DirectMessageEndpoint, request)
}

func (g *gateway) Announce(ctx context.Context, channelID int64, text string) (Response, error) {
	request := SendChannelMessageRequest{ChannelID: channelID, Text: text}
	return g.send(ctx, ChannelMessageEndpoint, request)
}

func (g *gateway) send(ctx context.Context, endpoint string, request any) (Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bot " + g.config.BotToken,
	}

	resp, err := g.client.Post(ctx, g.config.BaseURL+endpoint, &buf, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}

		return Response{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return Response{}, MapStatusToError(resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}
