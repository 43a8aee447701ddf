package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mailsift/mailsift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// fakeGmail serves the two API calls the provider makes: the message list
// and the per-message metadata get
type fakeGmail struct {
	listStatus int
	listBody   string
	details    map[string]string
}

func (f *fakeGmail) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/gmail/v1/users/me/messages" {
			if f.listStatus != 0 {
				w.WriteHeader(f.listStatus)
			}
			fmt.Fprint(w, f.listBody)
			return
		}

		parts := strings.Split(r.URL.Path, "/")
		id := parts[len(parts)-1]
		body, ok := f.details[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"code":404,"message":"Not Found"}}`)
			return
		}
		fmt.Fprint(w, body)
	})
}

func newFakeProvider(t *testing.T, fake *fakeGmail) *Provider {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return NewProvider(zap.NewNop(), option.WithEndpoint(server.URL+"/"))
}

func detailJSON(id, threadID, subject, from, snippet string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"threadId": %q,
		"snippet": %q,
		"payload": {"headers": [
			{"name": "Subject", "value": %q},
			{"name": "From", "value": %q}
		]}
	}`, id, threadID, snippet, subject, from)
}

func TestFetchMessages(t *testing.T) {
	fake := &fakeGmail{
		listBody: `{"messages":[{"id":"m1","threadId":"t1"},{"id":"m2","threadId":"t2"}]}`,
		details: map[string]string{
			"m1": detailJSON("m1", "t1", "Hello", "alice@example.com", "how are you"),
			"m2": detailJSON("m2", "t2", "Sale", "promo@example.com", "free money"),
		},
	}
	provider := newFakeProvider(t, fake)

	messages, err := provider.FetchMessages(context.Background(), "tok", 300)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, core.Message{
		ID:       "m1",
		ThreadID: "t1",
		Subject:  "Hello",
		From:     "alice@example.com",
		Snippet:  "how are you",
	}, messages[0])
	assert.Equal(t, "m2", messages[1].ID)
}

func TestFetchMessagesDefaultsMissingHeaders(t *testing.T) {
	fake := &fakeGmail{
		listBody: `{"messages":[{"id":"m1","threadId":"t1"}]}`,
		details: map[string]string{
			"m1": `{"id":"m1","threadId":"t1","snippet":"bare"}`,
		},
	}
	provider := newFakeProvider(t, fake)

	messages, err := provider.FetchMessages(context.Background(), "tok", 300)
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t, "No Subject", messages[0].Subject)
	assert.Equal(t, "Unknown Sender", messages[0].From)
	assert.Equal(t, "bare", messages[0].Snippet)
}

func TestFetchMessagesSkipsFailedDetails(t *testing.T) {
	fake := &fakeGmail{
		listBody: `{"messages":[{"id":"m1","threadId":"t1"},{"id":"gone","threadId":"t2"},{"id":"m3","threadId":"t3"}]}`,
		details: map[string]string{
			"m1": detailJSON("m1", "t1", "A", "a@example.com", "a"),
			"m3": detailJSON("m3", "t3", "C", "c@example.com", "c"),
		},
	}
	provider := newFakeProvider(t, fake)

	messages, err := provider.FetchMessages(context.Background(), "tok", 300)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.Equal(t, "m3", messages[1].ID)
}

func TestFetchMessagesEmptyMailbox(t *testing.T) {
	fake := &fakeGmail{listBody: `{}`}
	provider := newFakeProvider(t, fake)

	messages, err := provider.FetchMessages(context.Background(), "tok", 300)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestFetchMessagesUnauthorized(t *testing.T) {
	fake := &fakeGmail{
		listStatus: http.StatusUnauthorized,
		listBody:   `{"error":{"code":401,"message":"Invalid Credentials"}}`,
	}
	provider := newFakeProvider(t, fake)

	_, err := provider.FetchMessages(context.Background(), "bad-token", 300)
	require.Error(t, err)

	var authErr *core.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Contains(t, authErr.Details, "Invalid Credentials")
}

func TestFetchMessagesServerError(t *testing.T) {
	fake := &fakeGmail{
		listStatus: http.StatusInternalServerError,
		listBody:   `{"error":{"code":500,"message":"Backend Error"}}`,
	}
	provider := newFakeProvider(t, fake)

	_, err := provider.FetchMessages(context.Background(), "tok", 300)
	require.Error(t, err)

	var provErr *core.ProviderError
	assert.True(t, errors.As(err, &provErr))

	var authErr *core.AuthError
	assert.False(t, errors.As(err, &authErr))
}
