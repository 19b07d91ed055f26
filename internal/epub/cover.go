package epub

import (
	"encoding/xml"
	"path/filepath"
	"strings"
)

// coverPackage is the slice of the OPF structure needed for cover detection.
// Cover lookup is the one place a strict XML decode is used; when the
// package document is malformed there is simply no cover to extract.
type coverPackage struct {
	Metadata struct {
		Meta []struct {
			Name    string `xml:"name,attr"`
			Content string `xml:"content,attr"`
		} `xml:"meta"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID         string `xml:"id,attr"`
			Href       string `xml:"href,attr"`
			MediaType  string `xml:"media-type,attr"`
			Properties string `xml:"properties,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
}

// Cover returns the bytes and media type of the EPUB's cover image, if one
// is declared. Detection methods are tried in priority order:
//  1. properties="cover-image" (EPUB 3.0)
//  2. meta name="cover" referencing a manifest item (EPUB 2.0)
//  3. filename pattern (basename contains "cover", case-insensitive)
//
// SVG covers are skipped; the thumbnail writer only handles raster images.
func (r *Reader) Cover() ([]byte, string, bool) {
	opfPath, ok := r.findOPF()
	if !ok {
		return nil, "", false
	}
	content, err := r.ReadFile(opfPath)
	if err != nil {
		return nil, "", false
	}

	var pkg coverPackage
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil, "", false
	}

	opfDir := filepath.Dir(opfPath)

	// Method 1: EPUB 3.0 cover-image property
	for _, item := range pkg.Manifest.Items {
		for _, prop := range strings.Fields(item.Properties) {
			if prop == "cover-image" && isRasterImage(item.MediaType) {
				return r.readManifestImage(opfDir, item.Href, item.MediaType)
			}
		}
	}

	// Method 2: EPUB 2.0 meta name="cover"
	for _, meta := range pkg.Metadata.Meta {
		if meta.Name != "cover" || meta.Content == "" {
			continue
		}
		for _, item := range pkg.Manifest.Items {
			if item.ID == meta.Content && isRasterImage(item.MediaType) {
				return r.readManifestImage(opfDir, item.Href, item.MediaType)
			}
		}
	}

	// Method 3: filename pattern
	for _, item := range pkg.Manifest.Items {
		if !isRasterImage(item.MediaType) {
			continue
		}
		base := strings.ToLower(filepath.Base(item.Href))
		if strings.Contains(base, "cover") {
			return r.readManifestImage(opfDir, item.Href, item.MediaType)
		}
	}

	return nil, "", false
}

func (r *Reader) readManifestImage(opfDir, href, mediaType string) ([]byte, string, bool) {
	path := href
	if opfDir != "" && opfDir != "." {
		path = filepath.ToSlash(filepath.Join(opfDir, href))
	}
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, "", false
	}
	return data, mediaType, true
}

// isRasterImage reports whether a media type is a decodable raster image.
// SVG is excluded.
func isRasterImage(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
