// Package manifest builds the web application manifest served to browsers.
package manifest

import "fmt"

// IconSizes are the square icon resolutions listed in the manifest
var IconSizes = []int{192, 256, 384, 512}

// Icon describes one manifest icon
type Icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// Manifest is the web app descriptor
type Manifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	BackgroundColor string `json:"background_color"`
	Display         string `json:"display"`
	Orientation     string `json:"orientation"`
	Scope           string `json:"scope"`
	StartURL        string `json:"start_url"`
	Icons           []Icon `json:"icons"`
}

// Params are the configurable parts of the manifest
type Params struct {
	Name            string
	ShortName       string
	BackgroundColor string
}

// New makes the manifest, empty params fall back to the defaults
func New(p Params) Manifest {
	if p.Name == "" {
		p.Name = "News Feed"
	}
	if p.ShortName == "" {
		p.ShortName = "NewsFeed"
	}
	if p.BackgroundColor == "" {
		p.BackgroundColor = "#fff"
	}

	icons := make([]Icon, 0, len(IconSizes))
	for _, size := range IconSizes {
		icons = append(icons, Icon{
			Src:   fmt.Sprintf("/icons/icon-%dx%d.png", size, size),
			Sizes: fmt.Sprintf("%dx%d", size, size),
			Type:  "image/png",
		})
	}

	return Manifest{
		Name:            p.Name,
		ShortName:       p.ShortName,
		BackgroundColor: p.BackgroundColor,
		Display:         "standalone",
		Orientation:     "portrait",
		Scope:           "/",
		StartURL:        "/",
		Icons:           icons,
	}
}
