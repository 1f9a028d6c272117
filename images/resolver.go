// Package images resolves the heterogeneous image references carried by
// content-store records into URLs safe to place in an <img src>.
//
// A reference can be an uploaded-asset pointer, a bare URL string, or a
// record carrying one of several legacy field names. Normalize inspects the
// raw value once and produces a tagged Source; the rest of the package is
// pure string building. Nothing here returns an error: every branch
// terminates in an empty string (no image) or a best-effort URL.
package images

import (
	"fmt"
	"net/url"
	"strings"
)

// Fit selects the CDN transformation mode for asset-backed images.
type Fit string

const (
	FitCrop Fit = "crop"
	FitMax  Fit = "max"
)

// Options control the transformation applied to a resolved image.
// Width is always applied; Height and Fit only when set.
type Options struct {
	Width  int
	Height int
	Fit    Fit
}

// Kind tags the variant held by a Source.
type Kind int

const (
	// None means the value carried no usable image reference.
	None Kind = iota
	// Asset is an uploaded-asset reference resolved via the CDN.
	Asset
	// External is a URL pointing outside the content store.
	External
)

// Source is the normalized form of an image reference.
type Source struct {
	Kind     Kind
	AssetRef string // set when Kind == Asset
	URL      string // set when Kind == External, already trimmed
	Alt      string
}

// externalURLFields is the ordered list of legacy field names checked when a
// record carries an external URL instead of an uploaded asset.
var externalURLFields = []string{
	"externalUrl",
	"externalImageUrl",
	"url",
	"src",
	"href",
	"link",
	"imageUrl",
}

// Normalize inspects an arbitrary decoded JSON value once and returns its
// tagged Source. Asset references win over external-URL fields when both are
// present. Unusable values yield a Source with Kind None.
func Normalize(value any) Source {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return Source{Kind: External, URL: s}
		}
		return Source{}
	case map[string]any:
		src := Source{Alt: stringField(v, "alt")}
		if ref := assetRef(v); ref != "" {
			src.Kind = Asset
			src.AssetRef = ref
			return src
		}
		for _, field := range externalURLFields {
			if s := stringField(v, field); s != "" {
				src.Kind = External
				src.URL = s
				return src
			}
		}
		// Legacy shape: uploaded wrapper holding an external URL.
		if up, ok := v["uploaded"].(map[string]any); ok {
			if s := stringField(up, "externalUrl"); s != "" {
				src.Kind = External
				src.URL = s
				return src
			}
		}
		return src
	default:
		return Source{}
	}
}

// assetRef digs the asset reference out of a record, directly or nested
// under the known legacy wrappers.
func assetRef(record map[string]any) string {
	if ref := directAssetRef(record); ref != "" {
		return ref
	}
	for _, wrapper := range []string{"uploaded", "image"} {
		if nested, ok := record[wrapper].(map[string]any); ok {
			if ref := directAssetRef(nested); ref != "" {
				return ref
			}
		}
	}
	return ""
}

func directAssetRef(record map[string]any) string {
	asset, ok := record["asset"].(map[string]any)
	if !ok {
		return ""
	}
	return stringField(asset, "_ref")
}

func stringField(record map[string]any, key string) string {
	s, ok := record[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Alt returns the reference's alt text when present, else fallback.
func Alt(value any, fallback string) string {
	if record, ok := value.(map[string]any); ok {
		if alt := stringField(record, "alt"); alt != "" {
			return alt
		}
	}
	return fallback
}

// directImageExtensions are path suffixes treated as directly embeddable.
var directImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".webp", ".gif", ".avif", ".svg",
}

const (
	proxyMinWidth = 320
	proxyMaxWidth = 2000
)

// NormalizeExternalURL turns an external URL candidate into an embeddable
// URL. Root-relative paths and data URIs pass through unchanged, as do URLs
// with a recognized image extension. Anything else that parses as an
// absolute URL is assumed to be a web page and is substituted with a
// screenshot-proxy URL; unparsable strings come back trimmed as a
// best-effort fallback. Empty input yields "".
func NormalizeExternalURL(raw string, width int) string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return ""
	}
	if strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "data:") {
		return clean
	}

	parsed, err := url.Parse(clean)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return clean
	}

	path := strings.ToLower(parsed.Path)
	for _, ext := range directImageExtensions {
		if strings.HasSuffix(path, ext) {
			return clean
		}
	}

	// Not a direct image: render the page itself as a preview screenshot.
	safeWidth := clampWidth(width)
	target := parsed.Scheme + "://" + parsed.Host + parsed.Path
	return fmt.Sprintf("https://image.thum.io/get/width/%d/noanimate/%s", safeWidth, target)
}

func clampWidth(w int) int {
	if w < proxyMinWidth {
		return proxyMinWidth
	}
	if w > proxyMaxWidth {
		return proxyMaxWidth
	}
	return w
}

// Resolver turns normalized sources into final URLs using the site's CDN
// coordinates. The zero Resolver is not usable; construct with NewResolver.
type Resolver struct {
	cdn CDN
}

func NewResolver(cdn CDN) *Resolver {
	return &Resolver{cdn: cdn}
}

// URL resolves an arbitrary image-reference value into an embeddable URL,
// or "" when the value carries no usable reference.
func (r *Resolver) URL(value any, opts Options) string {
	src := Normalize(value)
	switch src.Kind {
	case Asset:
		return r.cdn.URLFor(src.AssetRef, opts)
	case External:
		return NormalizeExternalURL(src.URL, opts.Width)
	default:
		return ""
	}
}

// PostURL merges a post's image field with its externalImageUrl sibling into
// one reference before resolving. The uploaded asset wins when both exist.
func (r *Resolver) PostURL(image any, externalImageURL string, opts Options) string {
	merged, ok := image.(map[string]any)
	if ok {
		record := make(map[string]any, len(merged)+1)
		for k, v := range merged {
			record[k] = v
		}
		if strings.TrimSpace(externalImageURL) != "" {
			record["externalImageUrl"] = externalImageURL
		}
		return r.URL(record, opts)
	}
	if u := r.URL(image, opts); u != "" {
		return u
	}
	return NormalizeExternalURL(externalImageURL, opts.Width)
}

// FeaturedPostURL resolves a post's cover image at hero size.
func (r *Resolver) FeaturedPostURL(image any, externalImageURL string) string {
	return r.PostURL(image, externalImageURL, Options{Width: 1600, Height: 900, Fit: FitCrop})
}

// CardPostURL resolves a post's cover image at card size.
func (r *Resolver) CardPostURL(image any, externalImageURL string) string {
	return r.PostURL(image, externalImageURL, Options{Width: 960, Height: 540, Fit: FitCrop})
}

// InlineURL resolves an image embedded inside rich content.
func (r *Resolver) InlineURL(value any) string {
	return r.URL(value, Options{Width: 1200, Fit: FitMax})
}
