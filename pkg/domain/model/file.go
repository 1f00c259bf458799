package model

import (
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// SelectedFile is the image chosen by the user. It lives until a new
// selection or a reset replaces it.
type SelectedFile struct {
	Name      string
	MediaType string
	Data      []byte
}

// NewSelectedFile builds a selected file. The media type is the declared
// one when present, else guessed from the extension, else sniffed.
func NewSelectedFile(name, declared string, data []byte) *SelectedFile {
	return &SelectedFile{
		Name:      name,
		MediaType: mediaType(declared, name, data),
		Data:      data,
	}
}

func mediaType(declared, name string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// IsImage reports whether the file's media type is image/*
func (f *SelectedFile) IsImage() bool {
	if f == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(f.MediaType), "image/")
}

// Preview is a locally rendered preview of the selected file
type Preview struct {
	Name string
	URL  string `masq:"secret"` // data URL, never fetched from the network
}

// NewPreview builds a data URL preview for the file
func NewPreview(f *SelectedFile) *Preview {
	return &Preview{
		Name: f.Name,
		URL:  "data:" + f.MediaType + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
	}
}
