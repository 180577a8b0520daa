package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/mailer"
)

func TestConvertTags(t *testing.T) {
	t.Parallel()

	require.Nil(t, convertTags(nil))

	got := convertTags(mailer.Tags{
		"project":        "Acme Rebrand",
		"deliverable_id": "01J9",
		"urgent":         struct{}{},
		"files":          3,
		"ratio":          0.5,
	})
	require.Equal(t, []resend.Tag{
		{Name: "deliverable_id", Value: "01J9"},
		{Name: "files", Value: "3"},
		{Name: "project", Value: "Acme_Rebrand"},
		{Name: "ratio", Value: "0_5"},
		{Name: "urgent", Value: "true"},
	}, got)
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	t.Cleanup(srv.Close)

	s := New(Config{APIKey: "re_test", SenderEmail: "billing@example.com", SenderName: "Studio"})
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	err = s.Send(context.Background(), &mailer.Email{
		To:      []string{"client@example.com"},
		Subject: "Invoice",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Attachments: []mailer.Attachment{
			{Filename: "logo.png", ContentType: "image/png", Content: []byte("png")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Studio <billing@example.com>", body["from"])
	require.Equal(t, "Invoice", body["subject"])
	require.Len(t, body["attachments"], 1)
}

func TestSender_SendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
	}))
	t.Cleanup(srv.Close)

	s := New(Config{APIKey: "re_test", SenderEmail: "billing@example.com"})
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	err = s.Send(context.Background(), &mailer.Email{
		From:    "custom@example.com",
		To:      []string{"client@example.com"},
		Subject: "Invoice",
		HTML:    "<p>Hi</p>",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "resend:")
}
