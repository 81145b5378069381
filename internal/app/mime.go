package app

import (
	"log/slog"
	"mime"
)

// staticTypes are registered when the host has no mapping for them.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".ico": "image/x-icon",
}

func init() {
	for ext, typ := range staticTypes {
		ensureMimeType(ext, typ)
	}
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		slog.Default().Warn("register mime type", slog.String("ext", ext), slog.Any("error", err))
	}
}
