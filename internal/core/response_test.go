package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Classification
		wantErr bool
	}{
		{
			name: "plain JSON object",
			raw:  `{"isSpam": true, "reason": "promotional", "hasUnsubscribeLink": true, "identifiedLink": "http://x/unsub"}`,
			want: Classification{
				IsSpam:             true,
				Reason:             "promotional",
				HasUnsubscribeLink: true,
				IdentifiedLink:     strPtr("http://x/unsub"),
			},
		},
		{
			name: "wrapped in json code fence",
			raw: "```json\n" +
				`{"isSpam": false, "reason": "newsletter", "hasUnsubscribeLink": false, "identifiedLink": null}` +
				"\n```",
			want: Classification{
				IsSpam:             false,
				Reason:             "newsletter",
				HasUnsubscribeLink: false,
			},
		},
		{
			name: "wrapped in bare code fence with whitespace",
			raw: "  ```\n" +
				`{"isSpam": true, "reason": "phishing", "hasUnsubscribeLink": false, "identifiedLink": null}` +
				"\n```  ",
			want: Classification{
				IsSpam:             true,
				Reason:             "phishing",
				HasUnsubscribeLink: false,
			},
		},
		{
			name: "explicit null link",
			raw:  `{"isSpam": false, "reason": "ok", "hasUnsubscribeLink": false, "identifiedLink": null}`,
			want: Classification{IsSpam: false, Reason: "ok"},
		},
		{
			name: "link present but flag false is dropped",
			raw:  `{"isSpam": false, "reason": "ok", "hasUnsubscribeLink": false, "identifiedLink": "http://x"}`,
			want: Classification{IsSpam: false, Reason: "ok"},
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "not JSON at all",
			raw:     "I think this email is spam.",
			wantErr: true,
		},
		{
			name:    "boolean as string",
			raw:     `{"isSpam": "true", "reason": "x", "hasUnsubscribeLink": false, "identifiedLink": null}`,
			wantErr: true,
		},
		{
			name:    "missing isSpam",
			raw:     `{"reason": "x", "hasUnsubscribeLink": false, "identifiedLink": null}`,
			wantErr: true,
		},
		{
			name:    "missing reason",
			raw:     `{"isSpam": true, "hasUnsubscribeLink": false, "identifiedLink": null}`,
			wantErr: true,
		},
		{
			name:    "missing hasUnsubscribeLink",
			raw:     `{"isSpam": true, "reason": "x", "identifiedLink": null}`,
			wantErr: true,
		},
		{
			name:    "reason as number",
			raw:     `{"isSpam": true, "reason": 7, "hasUnsubscribeLink": false, "identifiedLink": null}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClassification(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.IsSpam, got.IsSpam)
			assert.Equal(t, tt.want.Reason, got.Reason)
			assert.Equal(t, tt.want.HasUnsubscribeLink, got.HasUnsubscribeLink)
			if tt.want.IdentifiedLink == nil {
				assert.Nil(t, got.IdentifiedLink)
			} else {
				require.NotNil(t, got.IdentifiedLink)
				assert.Equal(t, *tt.want.IdentifiedLink, *got.IdentifiedLink)
			}
		})
	}
}

func TestParseClassificationLinkInvariant(t *testing.T) {
	// hasUnsubscribeLink == false must always imply a nil link
	raws := []string{
		`{"isSpam": true, "reason": "x", "hasUnsubscribeLink": false, "identifiedLink": "http://x"}`,
		`{"isSpam": false, "reason": "y", "hasUnsubscribeLink": false, "identifiedLink": null}`,
	}
	for _, raw := range raws {
		got, err := ParseClassification(raw)
		require.NoError(t, err)
		if !got.HasUnsubscribeLink {
			assert.Nil(t, got.IdentifiedLink)
		}
	}
}

func strPtr(s string) *string {
	return &s
}
