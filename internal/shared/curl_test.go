package shared

import "testing"

func TestParseCurlCommand(t *testing.T) {
	tc := []struct {
		name      string
		curl      string
		wantDev   string
		wantMedia string
		wantErr   bool
	}{
		{
			name: "both headers single quotes",
			curl: `curl 'https://amp-api.music.apple.com/v1/me/library/albums' \
  -H 'Authorization: Bearer eyJhbGc.dev' \
  -H 'Media-User-Token: media123'`,
			wantDev:   "eyJhbGc.dev",
			wantMedia: "media123",
		},
		{
			name:      "double quoted headers",
			curl:      `curl "https://example.com" -H "authorization: Bearer tok" -H "media-user-token: mut"`,
			wantDev:   "tok",
			wantMedia: "mut",
		},
		{
			name:      "music-user-token variant",
			curl:      `curl 'https://example.com' -H 'Music-User-Token: mut2'`,
			wantMedia: "mut2",
		},
		{
			name:    "no auth headers",
			curl:    `curl 'https://example.com' -H 'Accept: application/json'`,
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ParseCurlCommand([]byte(tt.curl))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCurlCommand failed: %v", err)
			}
			if creds.DeveloperToken != tt.wantDev {
				t.Errorf("DeveloperToken = %q, want %q", creds.DeveloperToken, tt.wantDev)
			}
			if creds.MediaUserToken != tt.wantMedia {
				t.Errorf("MediaUserToken = %q, want %q", creds.MediaUserToken, tt.wantMedia)
			}
		})
	}
}
