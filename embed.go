package recetario

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains static assets shipped with the engine:
// votar.js (the like/dislike widget).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// embeddedAssetsFS is EmbeddedAssets rooted below the embedded/ prefix so
// files serve under /public/ by bare name. The subdirectory name is a
// compile-time constant, so a failure here is a packaging bug worth
// crashing on.
var embeddedAssetsFS = func() fs.FS {
	sub, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		panic("recetario: embedded assets: " + err.Error())
	}
	return sub
}()
