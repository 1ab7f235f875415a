package bus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchCorrelatedRequest(t *testing.T) {
	d := NewDispatcher()
	d.RegisterHandler(GetNetworkIndex, func(
		ctx context.Context, payload json.RawMessage,
	) (interface{}, error) {
		return map[string]int{"networkIndex": 1}, nil
	})

	res, err := d.Dispatch(context.Background(), Message{
		Type: GetNetworkIndex,
		ID:   "req-1",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, GetNetworkIndex, res.Type)
	require.Equal(t, "req-1", res.ID)
	require.JSONEq(t, `{"networkIndex":1}`, string(res.Payload))
}

func TestDispatchFireAndForget(t *testing.T) {
	d := NewDispatcher()
	handled := false
	d.RegisterHandler(Logout, func(
		ctx context.Context, payload json.RawMessage,
	) (interface{}, error) {
		handled = true
		return nil, nil
	})

	res, err := d.Dispatch(context.Background(), Message{Type: Logout})
	require.NoError(t, err)
	require.Nil(t, res)
	require.True(t, handled)
}

func TestDispatchNilResultAnswersCorrelatedRequest(t *testing.T) {
	d := NewDispatcher()
	d.RegisterHandler(StopTxPolling, func(
		ctx context.Context, payload json.RawMessage,
	) (interface{}, error) {
		return nil, nil
	})

	res, err := d.Dispatch(context.Background(), Message{
		Type: StopTxPolling,
		ID:   "req-2",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "req-2", res.ID)
	require.Equal(t, "null", string(res.Payload))
}

func TestDispatchUnknownTypeIsDropped(t *testing.T) {
	d := NewDispatcher()

	res, err := d.Dispatch(context.Background(), Message{
		Type: MessageType("SOMETHING_ELSE"),
		ID:   "req-3",
	})
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestDispatchHandlerError(t *testing.T) {
	d := NewDispatcher()
	expectedErr := errors.New("boom")
	d.RegisterHandler(SendTokens, func(
		ctx context.Context, payload json.RawMessage,
	) (interface{}, error) {
		return nil, expectedErr
	})

	res, err := d.Dispatch(context.Background(), Message{
		Type: SendTokens,
		ID:   "req-4",
	})
	require.ErrorIs(t, err, expectedErr)
	require.Nil(t, res)
}

func TestDispatchPayloadReachesHandler(t *testing.T) {
	d := NewDispatcher()
	var got string
	d.RegisterHandler(Login, func(
		ctx context.Context, payload json.RawMessage,
	) (interface{}, error) {
		in := struct {
			Password string `json:"password"`
		}{}
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, err
		}
		got = in.Password
		return nil, nil
	})

	msg := MustNewMessage(Login, map[string]string{"password": "hunter2"})
	_, err := d.Dispatch(context.Background(), msg)
	require.NoError(t, err)
	require.Equal(t, "hunter2", got)
}
