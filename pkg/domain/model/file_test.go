package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

func TestNewSelectedFile_MediaType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		declared string
		data     []byte
		want     string
		isImage  bool
	}{
		{
			name:     "declared type wins",
			fileName: "photo.bin",
			declared: "image/webp",
			want:     "image/webp",
			isImage:  true,
		},
		{
			name:     "extension when undeclared",
			fileName: "LEAF.PNG",
			want:     "image/png",
			isImage:  true,
		},
		{
			name:     "octet-stream falls back to extension",
			fileName: "leaf.jpg",
			declared: "application/octet-stream",
			want:     "image/jpeg",
			isImage:  true,
		},
		{
			name:     "sniffed without extension",
			fileName: "upload",
			data:     []byte("\x89PNG\r\n\x1a\n0000"),
			want:     "image/png",
			isImage:  true,
		},
		{
			name:     "plain text",
			fileName: "notes",
			data:     []byte("hello world"),
			want:     "text/plain; charset=utf-8",
			isImage:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := model.NewSelectedFile(tt.fileName, tt.declared, tt.data)
			gt.Value(t, f.MediaType).Equal(tt.want)
			gt.Value(t, f.IsImage()).Equal(tt.isImage)
		})
	}
}

func TestSelectedFile_IsImageNil(t *testing.T) {
	var f *model.SelectedFile
	gt.False(t, f.IsImage())
}

func TestNewPreview(t *testing.T) {
	p := model.NewPreview(&model.SelectedFile{Name: "a.gif", MediaType: "image/gif", Data: []byte("GIF89a")})
	gt.Value(t, p.Name).Equal("a.gif")
	gt.Value(t, p.URL).Equal("data:image/gif;base64,R0lGODlh")
}
