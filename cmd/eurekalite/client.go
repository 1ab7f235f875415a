package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thanhpk/randstr"
	"github.com/urfave/cli/v2"

	"github.com/eureka-network/eurekalite-daemon/pkg/bus"
)

const requestTimeout = 30 * time.Second

// request opens a short-lived connection to the daemon's popup endpoint,
// sends one correlated request and waits for the matching response.
// Broadcasts received while waiting are skipped.
func request(
	ctx *cli.Context, mtype bus.MessageType, payload interface{},
) (json.RawMessage, error) {
	endpoint := url.URL{
		Scheme: "ws",
		Host:   ctx.String("rpcserver"),
		Path:   "/ui",
	}
	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot reach daemon at %s: %w", endpoint.Host, err)
	}
	defer conn.Close()

	msg, err := bus.NewMessage(mtype, payload)
	if err != nil {
		return nil, err
	}
	msg.ID = randstr.Hex(8)

	buf, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(requestTimeout)
	for {
		conn.SetReadDeadline(deadline)
		_, resp, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}

		in := bus.Message{}
		if err := json.Unmarshal(resp, &in); err != nil {
			continue
		}
		if in.ID != msg.ID {
			continue
		}
		return in.Payload, nil
	}
}

func printRespJSON(payload json.RawMessage) {
	if len(payload) == 0 || string(payload) == "null" {
		fmt.Println("ok")
		return
	}

	out := map[string]interface{}{}
	if err := json.Unmarshal(payload, &out); err != nil {
		// scalar or array payloads print as-is
		fmt.Println(string(payload))
		return
	}
	buf, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(buf))
}
