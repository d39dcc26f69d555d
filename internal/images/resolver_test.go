package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "file share link",
			in:   "https://drive.google.com/file/d/1AbC_d-9XyZ/view?usp=sharing",
			want: "https://lh3.googleusercontent.com/d/1AbC_d-9XyZ=s600",
		},
		{
			name: "open link with id query",
			in:   "https://drive.google.com/open?id=1AbC_d-9XyZ",
			want: "https://lh3.googleusercontent.com/d/1AbC_d-9XyZ=s600",
		},
		{
			name: "uc export link",
			in:   "https://drive.google.com/uc?export=view&id=0B9qW",
			want: "https://lh3.googleusercontent.com/d/0B9qW=s600",
		},
		{
			name: "already direct lh3 url",
			in:   "https://lh3.googleusercontent.com/d/1AbC=s600",
			want: "https://lh3.googleusercontent.com/d/1AbC=s600",
		},
		{
			name: "googleapis url passes through",
			in:   "https://storage.googleapis.com/bucket/img.jpg",
			want: "https://storage.googleapis.com/bucket/img.jpg",
		},
		{
			name: "empty string",
			in:   "",
			want: PlaceholderPath,
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: PlaceholderPath,
		},
		{
			name: "unrelated url",
			in:   "https://example.com/photo.jpg",
			want: PlaceholderPath,
		},
		{
			name: "not a url at all",
			in:   "just some text",
			want: PlaceholderPath,
		},
		{
			name: "share link with surrounding whitespace",
			in:   "  https://drive.google.com/file/d/abc123/view  ",
			want: "https://lh3.googleusercontent.com/d/abc123=s600",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got, "Resolve must always return a usable URL")
		})
	}
}
